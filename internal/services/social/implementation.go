package social

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"lingualink/backend-api/internal/db"
	"lingualink/backend-api/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type socialService struct {
	config  config.Config
	logger  *zap.Logger
	dbConn  *sql.DB
	queries *db.Queries
}

// NewSocialService builds the friend-request service. It takes the
// *sql.DB directly (not just db.DBTX) because accepting a request runs
// the status transition and both mirror edge inserts in one
// transaction.
func NewSocialService(cfg config.Config, logger *zap.Logger, dbConn *sql.DB) Service {
	return &socialService{
		config:  cfg,
		logger:  logger,
		dbConn:  dbConn,
		queries: db.New(),
	}
}

func (s *socialService) SendFriendRequest(ctx context.Context, senderID, recipientID int64) (*db.FriendRequest, error) {
	if senderID == recipientID {
		return nil, ErrCannotFriendSelf
	}

	_, err := s.queries.GetUser(ctx, s.dbConn, recipientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to look up recipient: %w", err)
	}

	friends, err := s.queries.FriendshipExists(ctx, s.dbConn, &db.FriendshipPairParams{
		UserID:   senderID,
		FriendID: recipientID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}
	if friends {
		return nil, ErrAlreadyFriends
	}

	// The unique index on the canonical pair is the authority on
	// duplicates: no pre-read, so two concurrent sends between the
	// same pair admit exactly one winner.
	params := &db.CreateFriendRequestParams{
		RequestID:   uuid.New().String(),
		SenderID:    senderID,
		RecipientID: recipientID,
		PairLo:      min(senderID, recipientID),
		PairHi:      max(senderID, recipientID),
	}
	err = s.queries.CreateFriendRequest(ctx, s.dbConn, params)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: friend_requests.pair_lo, friend_requests.pair_hi") {
			return nil, ErrRequestAlreadyExists
		}
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	request, err := s.queries.GetFriendRequest(ctx, s.dbConn, params.RequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created friend request: %w", err)
	}

	s.logger.Debug("Friend request sent",
		zap.String("request_id", request.RequestID),
		zap.Int64("sender_id", senderID),
		zap.Int64("recipient_id", recipientID))
	return request, nil
}

func (s *socialService) AcceptFriendRequest(ctx context.Context, requestID string, actingUserID int64) error {
	tx, err := s.dbConn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	request, err := s.queries.GetFriendRequest(ctx, tx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to get friend request: %w", err)
	}
	if request.RecipientID != actingUserID {
		return ErrNotRequestRecipient
	}
	if request.Status != db.FriendRequestPending {
		return ErrRequestNotPending
	}

	err = s.queries.UpdateFriendRequestStatus(ctx, tx, &db.UpdateFriendRequestStatusParams{
		RequestID: requestID,
		Status:    db.FriendRequestAccepted,
	})
	if err != nil {
		return fmt.Errorf("failed to accept friend request: %w", err)
	}

	// Both directions of the edge commit together with the status
	// change; the inserts are idempotent, so a replay cannot leave the
	// relationship asymmetric.
	err = s.queries.InsertFriendship(ctx, tx, &db.FriendshipPairParams{
		UserID:   request.SenderID,
		FriendID: request.RecipientID,
	})
	if err != nil {
		return fmt.Errorf("failed to insert friendship: %w", err)
	}
	err = s.queries.InsertFriendship(ctx, tx, &db.FriendshipPairParams{
		UserID:   request.RecipientID,
		FriendID: request.SenderID,
	})
	if err != nil {
		return fmt.Errorf("failed to insert reverse friendship: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit friend request acceptance: %w", err)
	}

	s.logger.Debug("Friend request accepted",
		zap.String("request_id", requestID),
		zap.Int64("sender_id", request.SenderID),
		zap.Int64("recipient_id", request.RecipientID))
	return nil
}

func (s *socialService) ListIncomingRequests(ctx context.Context, userID int64) ([]*db.IncomingRequestRow, error) {
	requests, err := s.queries.ListIncomingPending(ctx, s.dbConn, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incoming requests: %w", err)
	}
	return requests, nil
}

func (s *socialService) ListOutgoingAcceptedRequests(ctx context.Context, userID int64) ([]*db.OutgoingRequestRow, error) {
	requests, err := s.queries.ListOutgoingByStatus(ctx, s.dbConn, &db.ListOutgoingByStatusParams{
		SenderID: userID,
		Status:   db.FriendRequestAccepted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list accepted requests: %w", err)
	}
	return requests, nil
}

func (s *socialService) ListOutgoingPendingRequests(ctx context.Context, userID int64) ([]*db.OutgoingRequestRow, error) {
	requests, err := s.queries.ListOutgoingByStatus(ctx, s.dbConn, &db.ListOutgoingByStatusParams{
		SenderID: userID,
		Status:   db.FriendRequestPending,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list outgoing requests: %w", err)
	}
	return requests, nil
}

func (s *socialService) ListFriends(ctx context.Context, userID int64) ([]*db.FriendRow, error) {
	friends, err := s.queries.ListFriends(ctx, s.dbConn, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return friends, nil
}

func (s *socialService) AddFavorite(ctx context.Context, userID, targetID int64) error {
	friends, err := s.queries.FriendshipExists(ctx, s.dbConn, &db.FriendshipPairParams{
		UserID:   userID,
		FriendID: targetID,
	})
	if err != nil {
		return fmt.Errorf("failed to check friendship: %w", err)
	}
	if !friends {
		return ErrNotFriends
	}

	err = s.queries.AddFavorite(ctx, s.dbConn, &db.FriendshipPairParams{
		UserID:   userID,
		FriendID: targetID,
	})
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	s.logger.Debug("Favorite added", zap.Int64("user_id", userID), zap.Int64("friend_id", targetID))
	return nil
}

func (s *socialService) RemoveFavorite(ctx context.Context, userID, targetID int64) error {
	err := s.queries.RemoveFavorite(ctx, s.dbConn, &db.FriendshipPairParams{
		UserID:   userID,
		FriendID: targetID,
	})
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	s.logger.Debug("Favorite removed", zap.Int64("user_id", userID), zap.Int64("friend_id", targetID))
	return nil
}

func (s *socialService) ListRecommendedUsers(ctx context.Context, userID int64) ([]*db.RecommendedUserRow, error) {
	users, err := s.queries.ListRecommendedUsers(ctx, s.dbConn, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommended users: %w", err)
	}
	return users, nil
}
