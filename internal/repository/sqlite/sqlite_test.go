package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"travel-journal/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if err := NewUserRepository(db).Init(ctx); err != nil {
		t.Fatalf("init users: %v", err)
	}
	if err := NewTripRepository(db).Init(ctx); err != nil {
		t.Fatalf("init trips: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *sql.DB, username string) *domain.User {
	t.Helper()

	user := &domain.User{
		Username:     username,
		FirstName:    "Tom",
		LastName:     "Smith",
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleUser,
	}
	if _, err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("seed user %q: %v", username, err)
	}
	return user
}

func seedTrip(t *testing.T, db *sql.DB, userID int64, title string) *domain.Trip {
	t.Helper()

	trip := &domain.Trip{
		Title:       title,
		Description: "a trip",
		Location:    "Oslo",
		Start:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		UserID:      userID,
	}
	if _, err := NewTripRepository(db).Create(context.Background(), trip); err != nil {
		t.Fatalf("seed trip %q: %v", title, err)
	}
	return trip
}
