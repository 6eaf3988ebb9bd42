package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lingualink/backend-api/internal/db"
	"lingualink/backend-api/pkg/config"

	"go.uber.org/zap"
)

type accountService struct {
	config  config.Config
	logger  *zap.Logger
	dbConn  db.DBTX
	queries *db.Queries
}

func NewAccountService(cfg config.Config, logger *zap.Logger, dbConn db.DBTX) Service {
	return &accountService{
		config:  cfg,
		logger:  logger,
		dbConn:  dbConn,
		queries: db.New(),
	}
}

func (s *accountService) GetUser(ctx context.Context, userID int64) (*db.User, error) {
	user, err := s.queries.GetUser(ctx, s.dbConn, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// CompleteOnboarding writes the profile and flips the onboarded flag,
// which admits the user into recommendations.
func (s *accountService) CompleteOnboarding(ctx context.Context, userID int64, params *ProfileParams) (*db.User, error) {
	return s.saveProfile(ctx, userID, params, true)
}

// UpdateProfile edits the profile without touching the onboarded flag.
func (s *accountService) UpdateProfile(ctx context.Context, userID int64, params *ProfileParams) (*db.User, error) {
	return s.saveProfile(ctx, userID, params, false)
}

func (s *accountService) saveProfile(ctx context.Context, userID int64, params *ProfileParams, markOnboarded bool) (*db.User, error) {
	if params.FullName == "" || params.Bio == "" || params.NativeLanguage == "" ||
		params.LearningLanguage == "" || params.Location == "" {
		return nil, ErrMissingFields
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Keep the current avatar when the write does not supply one.
	profilePic := params.ProfilePic
	if profilePic == "" {
		profilePic = user.ProfilePic
	}

	isOnboarded := user.IsOnboarded
	if markOnboarded {
		isOnboarded = 1
	}

	err = s.queries.UpdateUserProfile(ctx, s.dbConn, &db.UpdateUserProfileParams{
		UserID:           userID,
		FullName:         params.FullName,
		Bio:              params.Bio,
		ProfilePic:       profilePic,
		NativeLanguage:   params.NativeLanguage,
		LearningLanguage: params.LearningLanguage,
		Location:         params.Location,
		IsOnboarded:      isOnboarded,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}

	updated, err := s.queries.GetUser(ctx, s.dbConn, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve updated user: %w", err)
	}

	s.logger.Debug("Profile saved",
		zap.Int64("user_id", userID),
		zap.Bool("onboarding", markOnboarded))
	return updated, nil
}
