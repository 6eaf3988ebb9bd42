package auth

import (
	"context"
	"errors"

	"lingualink/backend-api/internal/db"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrSessionNotFound     = errors.New("session not found")
)

type Service interface {
	Authenticate(ctx context.Context, email, password string) (*db.User, error)
	RegisterUser(ctx context.Context, email, fullName, password string) (*db.User, error)
	GenerateAccessToken(userID int64) (string, error)
	CreateSession(ctx context.Context, userID int64, ipAddress, userAgent string) (string, error)
	RefreshSession(ctx context.Context, oldToken, ipAddress, userAgent string) (int64, string, error)
	DeleteSession(ctx context.Context, token string) error
	ValidateToken(tokenString string) (*jwt.RegisteredClaims, error)
}
