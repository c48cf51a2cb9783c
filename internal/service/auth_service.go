package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"travel-journal/internal/repository"
)

// incorrectCredentials is the single failure returned for every login
// problem so that responses do not reveal whether the username exists.
const incorrectCredentials = "incorrect credentials"

// dummyPasswordHash is compared against when the username is unknown, so
// the unknown-username path costs roughly as much as a real verification.
var dummyPasswordHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Claims is the JWT payload issued on login.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	UserID   int64  `json:"user_id"`
	jwt.RegisteredClaims
}

// AuthService handles registration, credential verification and tokens.
type AuthService interface {
	Register(ctx context.Context, params CreateUserParams) error
	Login(ctx context.Context, username, password string) (string, error)
	VerifyToken(token string) (*Claims, error)
}

type authService struct {
	users    repository.UserRepository
	userSvc  UserService
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users repository.UserRepository, userSvc UserService, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		users:    users,
		userSvc:  userSvc,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, params CreateUserParams) error {
	username := strings.TrimSpace(params.Username)
	if username == "" {
		return validationError("username is required")
	}

	_, err := s.userSvc.GetByUsername(ctx, username)
	if err == nil {
		return conflictError("user with this username already exists", nil)
	}
	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Kind != KindNotFound {
		return err
	}

	return s.userSvc.Create(ctx, params)
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return "", validationError(incorrectCredentials)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return "", validationError(incorrectCredentials)
		}
		return "", internalError("could not verify credentials", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", validationError(incorrectCredentials)
	}

	now := time.Now()
	claims := &Claims{
		Username: user.Username,
		Role:     user.Role,
		UserID:   user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", internalError("could not sign token", err)
	}
	return token, nil
}

func (s *authService) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, validationError("invalid token")
	}
	return claims, nil
}
