package account

import (
	"context"
	"errors"

	"lingualink/backend-api/internal/db"
)

var (
	// ErrUserNotFound means the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrMissingFields rejects a profile write with incomplete data.
	ErrMissingFields = errors.New("all profile fields are required")
)

// ProfileParams carries the editable profile fields. Onboarding and
// later profile edits share the same field set; only onboarded users
// appear in recommendations.
type ProfileParams struct {
	FullName         string
	Bio              string
	ProfilePic       string
	NativeLanguage   string
	LearningLanguage string
	Location         string
}

type Service interface {
	GetUser(ctx context.Context, userID int64) (*db.User, error)
	CompleteOnboarding(ctx context.Context, userID int64, params *ProfileParams) (*db.User, error)
	UpdateProfile(ctx context.Context, userID int64, params *ProfileParams) (*db.User, error)
}
