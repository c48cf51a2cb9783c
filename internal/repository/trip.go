package repository

import (
	"context"

	"travel-journal/internal/domain"
)

// TripRepository exposes persistence operations for Trip entities.
type TripRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, trip *domain.Trip) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Trip, error)
	Update(ctx context.Context, trip *domain.Trip) error
	Delete(ctx context.Context, id int64) error
}
