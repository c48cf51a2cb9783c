package service

import (
	"context"
	"strconv"
	"testing"
	"time"
)

func TestTripService_CreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "traveler")
	trip := env.createTrip(t, user.UserID, "Norway")

	got, err := env.tripSvc.GetByID(ctx, trip.TripID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Norway" || got.Location != "Oslo" || got.UserID != user.UserID {
		t.Fatalf("unexpected trip view: %+v", got)
	}
	if !got.Start.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start not preserved: %v", got.Start)
	}
}

func TestTripService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "traveler")

	wantKind(t, env.tripSvc.Create(ctx, CreateTripParams{UserID: user.UserID}), KindValidation)
	wantKind(t, env.tripSvc.Create(ctx, CreateTripParams{Title: "No owner"}), KindValidation)
}

func TestTripService_CreateUnknownOwner(t *testing.T) {
	env := newTestEnv(t)

	err := env.tripSvc.Create(context.Background(), CreateTripParams{
		UserID: 9999,
		Title:  "Orphan",
	})
	wantKind(t, err, KindConflict)
}

func TestTripService_GetNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tripSvc.GetByID(context.Background(), 7)
	wantKind(t, err, KindNotFound)
}

func TestTripService_UpdatePatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "traveler")
	trip := env.createTrip(t, user.UserID, "Norway")

	patch := []byte(`[
		{"op": "replace", "path": "/title", "value": "Norway 2024"},
		{"op": "replace", "path": "/location", "value": "Bergen"},
		{"op": "replace", "path": "/end", "value": "2024-06-20T00:00:00Z"}
	]`)
	if err := env.tripSvc.Update(ctx, trip.TripID, patch); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := env.tripSvc.GetByID(ctx, trip.TripID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Norway 2024" || got.Location != "Bergen" {
		t.Fatalf("patch not applied: %+v", got)
	}
	if !got.End.Equal(time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end not patched: %v", got.End)
	}
}

func TestTripService_UpdateReassignOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	trip := env.createTrip(t, alice.UserID, "Shared")

	patch := []byte(`[{"op": "replace", "path": "/userId", "value": ` + strconv.FormatInt(bob.UserID, 10) + `}]`)
	if err := env.tripSvc.Update(ctx, trip.TripID, patch); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := env.tripSvc.GetByID(ctx, trip.TripID)
	if got.UserID != bob.UserID {
		t.Fatalf("owner not reassigned: %+v", got)
	}
}

func TestTripService_UpdateFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "traveler")
	trip := env.createTrip(t, user.UserID, "Norway")

	t.Run("not found", func(t *testing.T) {
		wantKind(t, env.tripSvc.Update(ctx, 9999, []byte(`[]`)), KindNotFound)
	})

	t.Run("malformed document", func(t *testing.T) {
		wantKind(t, env.tripSvc.Update(ctx, trip.TripID, []byte(`not json`)), KindValidation)
	})

	t.Run("unknown field", func(t *testing.T) {
		patch := []byte(`[{"op": "add", "path": "/rating", "value": 5}]`)
		wantKind(t, env.tripSvc.Update(ctx, trip.TripID, patch), KindInternal)
	})

	t.Run("empty title", func(t *testing.T) {
		patch := []byte(`[{"op": "replace", "path": "/title", "value": " "}]`)
		wantKind(t, env.tripSvc.Update(ctx, trip.TripID, patch), KindValidation)
	})

	t.Run("unknown owner", func(t *testing.T) {
		patch := []byte(`[{"op": "replace", "path": "/userId", "value": 9999}]`)
		wantKind(t, env.tripSvc.Update(ctx, trip.TripID, patch), KindConflict)
	})
}

func TestTripService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "traveler")
	trip := env.createTrip(t, user.UserID, "Norway")

	if err := env.tripSvc.Delete(ctx, trip.TripID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	wantKind(t, env.tripSvc.Delete(ctx, trip.TripID), KindNotFound)
}
