package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"travel-journal/internal/domain"
	"travel-journal/internal/repository"
)

// CreateUserParams carries the data needed to register a new user.
type CreateUserParams struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// userPatch is the patchable projection of a user, mirroring the fields a
// client may modify through a JSON patch document.
type userPatch struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// UserService describes user lifecycle operations.
type UserService interface {
	List(ctx context.Context) ([]UserDetails, error)
	GetByID(ctx context.Context, id int64) (*UserDetails, error)
	GetByUsername(ctx context.Context, username string) (*UserDetails, error)
	Create(ctx context.Context, params CreateUserParams) error
	Update(ctx context.Context, id int64, patch []byte) error
	Delete(ctx context.Context, id int64) error
	ListTrips(ctx context.Context, userID int64) ([]TripDetails, error)
}

type userService struct {
	users repository.UserRepository
	trips TripService
}

func NewUserService(users repository.UserRepository, trips TripService) UserService {
	return &userService{
		users: users,
		trips: trips,
	}
}

func (s *userService) List(ctx context.Context) ([]UserDetails, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, internalError("could not list users", err)
	}

	details := make([]UserDetails, len(users))
	for i := range users {
		details[i] = *userToDetails(&users[i])
	}
	return details, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*UserDetails, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("user with this ID was not found")
		}
		return nil, internalError("could not load user", err)
	}
	return userToDetails(user), nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*UserDetails, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("user with this username was not found")
		}
		return nil, internalError("could not load user", err)
	}
	return userToDetails(user), nil
}

func (s *userService) Create(ctx context.Context, params CreateUserParams) error {
	username := strings.TrimSpace(params.Username)
	password := strings.TrimSpace(params.Password)

	if username == "" {
		return validationError("username is required")
	}
	if password == "" {
		return validationError("password is required")
	}
	if len(password) < 8 {
		return validationError("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return internalError("could not hash password", err)
	}

	user := &domain.User{
		Username:     username,
		FirstName:    strings.TrimSpace(params.FirstName),
		LastName:     strings.TrimSpace(params.LastName),
		Email:        strings.TrimSpace(params.Email),
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflictError("user with this username already exists", err)
		}
		return internalError("could not create user", err)
	}
	return nil
}

func (s *userService) Update(ctx context.Context, id int64, patch []byte) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError("user with this ID was not found")
		}
		return internalError("could not load user", err)
	}

	patched, err := applyPatch(patch, userPatch{
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	})
	if err != nil {
		return err
	}
	if strings.TrimSpace(patched.Username) == "" {
		return validationError("username must not be empty")
	}

	user.Username = patched.Username
	user.FirstName = patched.FirstName
	user.LastName = patched.LastName
	user.Email = patched.Email

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflictError("user with this username already exists", err)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return conflictError("user was deleted concurrently", err)
		}
		return internalError("could not update user", err)
	}
	return nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError("user with this ID was not found")
		}
		if errors.Is(err, repository.ErrConflict) {
			return conflictError("user could not be deleted", err)
		}
		return internalError("could not delete user", err)
	}
	return nil
}

func (s *userService) ListTrips(ctx context.Context, userID int64) ([]TripDetails, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("user with this ID was not found")
		}
		return nil, internalError("could not load user", err)
	}
	return s.trips.ListByUser(ctx, userID)
}
