package service

import (
	"bytes"
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// applyPatch applies an RFC 6902 patch document to the JSON projection of
// current and decodes the result back into the same shape. A structurally
// invalid document fails with KindValidation before anything is applied; a
// document that applies but does not map back onto the resource's fields
// (unknown paths, ill-typed values) fails with KindInternal.
func applyPatch[T any](patch []byte, current T) (T, error) {
	var zero T

	doc, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return zero, validationError("invalid JSON patch document")
	}

	raw, err := json.Marshal(current)
	if err != nil {
		return zero, internalError("mapping of objects was unsuccessful", err)
	}

	patched, err := doc.Apply(raw)
	if err != nil {
		return zero, internalError("patch could not be applied", err)
	}

	dec := json.NewDecoder(bytes.NewReader(patched))
	dec.DisallowUnknownFields()

	var out T
	if err := dec.Decode(&out); err != nil {
		return zero, internalError("patch does not map onto resource fields", err)
	}
	return out, nil
}
