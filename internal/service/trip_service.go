package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"travel-journal/internal/domain"
	"travel-journal/internal/repository"
)

// CreateTripParams carries the data needed to record a new trip.
type CreateTripParams struct {
	UserID      int64
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// tripPatch is the patchable projection of a trip. The owning user may be
// reassigned through it, matching the update contract of the API.
type tripPatch struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	UserID      int64     `json:"userId"`
}

// TripService coordinates trip level operations backed by the trip repository.
type TripService interface {
	List(ctx context.Context) ([]TripDetails, error)
	GetByID(ctx context.Context, id int64) (*TripDetails, error)
	Create(ctx context.Context, params CreateTripParams) error
	Update(ctx context.Context, id int64, patch []byte) error
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]TripDetails, error)
}

type tripService struct {
	trips repository.TripRepository
}

func NewTripService(trips repository.TripRepository) TripService {
	return &tripService{trips: trips}
}

func (s *tripService) List(ctx context.Context) ([]TripDetails, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, internalError("could not list trips", err)
	}
	return tripsToDetails(trips), nil
}

func (s *tripService) GetByID(ctx context.Context, id int64) (*TripDetails, error) {
	trip, err := s.trips.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("trip with this ID was not found")
		}
		return nil, internalError("could not load trip", err)
	}
	return tripToDetails(trip), nil
}

func (s *tripService) Create(ctx context.Context, params CreateTripParams) error {
	if strings.TrimSpace(params.Title) == "" {
		return validationError("title is required")
	}
	if params.UserID <= 0 {
		return validationError("userId is required")
	}

	trip := &domain.Trip{
		Title:       params.Title,
		Description: params.Description,
		Location:    params.Location,
		Start:       params.Start,
		End:         params.End,
		UserID:      params.UserID,
	}

	if _, err := s.trips.Create(ctx, trip); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflictError("trip could not be created", err)
		}
		return internalError("could not create trip", err)
	}
	return nil
}

func (s *tripService) Update(ctx context.Context, id int64, patch []byte) error {
	trip, err := s.trips.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError("trip with this ID was not found")
		}
		return internalError("could not load trip", err)
	}

	patched, err := applyPatch(patch, tripPatch{
		Title:       trip.Title,
		Description: trip.Description,
		Location:    trip.Location,
		Start:       trip.Start,
		End:         trip.End,
		UserID:      trip.UserID,
	})
	if err != nil {
		return err
	}
	if strings.TrimSpace(patched.Title) == "" {
		return validationError("title must not be empty")
	}
	if patched.UserID <= 0 {
		return validationError("userId must reference a user")
	}

	trip.Title = patched.Title
	trip.Description = patched.Description
	trip.Location = patched.Location
	trip.Start = patched.Start
	trip.End = patched.End
	trip.UserID = patched.UserID

	if err := s.trips.Update(ctx, trip); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflictError("trip could not be updated", err)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return conflictError("trip was deleted concurrently", err)
		}
		return internalError("could not update trip", err)
	}
	return nil
}

func (s *tripService) Delete(ctx context.Context, id int64) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError("trip with this ID was not found")
		}
		if errors.Is(err, repository.ErrConflict) {
			return conflictError("trip could not be deleted", err)
		}
		return internalError("could not delete trip", err)
	}
	return nil
}

// ListByUser filters trips by their owner. Existence of the owner is the
// caller's responsibility.
func (s *tripService) ListByUser(ctx context.Context, userID int64) ([]TripDetails, error) {
	trips, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, internalError("could not list trips", err)
	}
	return tripsToDetails(trips), nil
}

func tripsToDetails(trips []domain.Trip) []TripDetails {
	details := make([]TripDetails, len(trips))
	for i := range trips {
		details[i] = *tripToDetails(&trips[i])
	}
	return details
}
