package service

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"travel-journal/internal/repository"
	"travel-journal/internal/repository/sqlite"
)

type testEnv struct {
	db    *sql.DB
	users repository.UserRepository
	trips repository.TripRepository

	userSvc UserService
	tripSvc TripService
	authSvc AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	users := sqlite.NewUserRepository(db)
	trips := sqlite.NewTripRepository(db)
	if err := users.Init(ctx); err != nil {
		t.Fatalf("init users: %v", err)
	}
	if err := trips.Init(ctx); err != nil {
		t.Fatalf("init trips: %v", err)
	}

	tripSvc := NewTripService(trips)
	userSvc := NewUserService(users, tripSvc)
	authSvc := NewAuthService(users, userSvc, "test-secret", 24*time.Hour)

	return &testEnv{
		db:      db,
		users:   users,
		trips:   trips,
		userSvc: userSvc,
		tripSvc: tripSvc,
		authSvc: authSvc,
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *UserDetails {
	t.Helper()

	err := e.userSvc.Create(context.Background(), CreateUserParams{
		Username:  username,
		FirstName: "Tom",
		LastName:  "Smith",
		Email:     username + "@example.com",
		Password:  "correct-horse",
	})
	if err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	details, err := e.userSvc.GetByUsername(context.Background(), username)
	if err != nil {
		t.Fatalf("read back user %q: %v", username, err)
	}
	return details
}

func (e *testEnv) createTrip(t *testing.T, userID int64, title string) *TripDetails {
	t.Helper()

	err := e.tripSvc.Create(context.Background(), CreateTripParams{
		UserID:      userID,
		Title:       title,
		Description: "a trip",
		Location:    "Oslo",
		Start:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create trip %q: %v", title, err)
	}

	trips, err := e.tripSvc.ListByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("list trips: %v", err)
	}
	for i := range trips {
		if trips[i].Title == title {
			return &trips[i]
		}
	}
	t.Fatalf("trip %q not found after create", title)
	return nil
}

// wantKind fails the test unless err is a service error of the given kind.
func wantKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()

	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *service.Error, got %v", err)
	}
	if svcErr.Kind != kind {
		t.Fatalf("expected kind %d, got %d (%s)", kind, svcErr.Kind, svcErr.Message)
	}
	return svcErr
}
