package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"travel-journal/internal/domain"
	"travel-journal/internal/repository"
)

const createTripsTable = `
CREATE TABLE IF NOT EXISTS trips (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	location TEXT NOT NULL,
	start_at DATETIME NOT NULL,
	end_at DATETIME NOT NULL,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_trips_user_id ON trips(user_id);
`

type TripRepository struct {
	db *sql.DB
}

func NewTripRepository(db *sql.DB) repository.TripRepository {
	return &TripRepository{db: db}
}

func (r *TripRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTripsTable); err != nil {
		return fmt.Errorf("create trips table: %w", err)
	}
	return nil
}

func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) (int64, error) {
	now := time.Now().UTC()
	trip.CreatedAt = now
	trip.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO trips (title, description, location, start_at, end_at, user_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		trip.Title,
		trip.Description,
		trip.Location,
		trip.Start,
		trip.End,
		trip.UserID,
		trip.CreatedAt,
		trip.UpdatedAt,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return 0, fmt.Errorf("insert trip: %w", repository.ErrConflict)
		}
		return 0, fmt.Errorf("insert trip: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted trip id: %w", err)
	}
	trip.ID = id
	return id, nil
}

func (r *TripRepository) Get(ctx context.Context, id int64) (*domain.Trip, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, description, location, start_at, end_at, user_id, created_at, updated_at
FROM trips WHERE id = ?`, id)
	return scanTrip(row)
}

func (r *TripRepository) List(ctx context.Context) ([]domain.Trip, error) {
	return r.list(ctx, `
SELECT id, title, description, location, start_at, end_at, user_id, created_at, updated_at
FROM trips ORDER BY id`)
}

func (r *TripRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Trip, error) {
	return r.list(ctx, `
SELECT id, title, description, location, start_at, end_at, user_id, created_at, updated_at
FROM trips WHERE user_id = ? ORDER BY id`, userID)
}

func (r *TripRepository) list(ctx context.Context, query string, args ...any) ([]domain.Trip, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		var t domain.Trip
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.Location,
			&t.Start,
			&t.End,
			&t.UserID,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	trip.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE trips
SET title = ?, description = ?, location = ?, start_at = ?, end_at = ?, user_id = ?, updated_at = ?
WHERE id = ?`,
		trip.Title,
		trip.Description,
		trip.Location,
		trip.Start,
		trip.End,
		trip.UserID,
		trip.UpdatedAt,
		trip.ID,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("update trip %d: %w", trip.ID, repository.ErrConflict)
		}
		return fmt.Errorf("update trip: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update trip rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update trip %d: %w", trip.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *TripRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete trip rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete trip %d: %w", id, repository.ErrNotFound)
	}
	return nil
}

func scanTrip(row *sql.Row) (*domain.Trip, error) {
	var t domain.Trip
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Location,
		&t.Start,
		&t.End,
		&t.UserID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip: %w", repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan trip: %w", err)
	}
	return &t, nil
}

// isConstraintViolation reports unique or foreign key failures, both of
// which surface to callers as a storage conflict.
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "foreign key")
}
