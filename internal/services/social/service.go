package social

import (
	"context"
	"errors"

	"lingualink/backend-api/internal/db"
)

var (
	// ErrCannotFriendSelf rejects a self-addressed friend request.
	ErrCannotFriendSelf = errors.New("cannot send friend request to yourself")
	// ErrRecipientNotFound means the requested recipient does not exist.
	ErrRecipientNotFound = errors.New("recipient not found")
	// ErrAlreadyFriends means a friend edge already exists for the pair.
	ErrAlreadyFriends = errors.New("you are already friends with this user")
	// ErrRequestAlreadyExists means a request already exists between the
	// pair, in either direction, regardless of status.
	ErrRequestAlreadyExists = errors.New("a friend request already exists between you and this user")
	// ErrRequestNotFound means no request with the given ID exists.
	ErrRequestNotFound = errors.New("friend request not found")
	// ErrNotRequestRecipient means the acting user is not the recipient
	// of the request they tried to accept.
	ErrNotRequestRecipient = errors.New("you are not authorized to accept this friend request")
	// ErrRequestNotPending means the request was already accepted.
	ErrRequestNotPending = errors.New("friend request is not pending")
	// ErrNotFriends rejects favoriting a user who is not a friend.
	ErrNotFriends = errors.New("you can only favorite your friends")
)

// Service owns the friend-request social graph: pairwise requests,
// symmetric friend edges, per-user favorites, and recommendations.
type Service interface {
	SendFriendRequest(ctx context.Context, senderID, recipientID int64) (*db.FriendRequest, error)
	AcceptFriendRequest(ctx context.Context, requestID string, actingUserID int64) error
	ListIncomingRequests(ctx context.Context, userID int64) ([]*db.IncomingRequestRow, error)
	ListOutgoingAcceptedRequests(ctx context.Context, userID int64) ([]*db.OutgoingRequestRow, error)
	ListOutgoingPendingRequests(ctx context.Context, userID int64) ([]*db.OutgoingRequestRow, error)
	ListFriends(ctx context.Context, userID int64) ([]*db.FriendRow, error)
	AddFavorite(ctx context.Context, userID, targetID int64) error
	RemoveFavorite(ctx context.Context, userID, targetID int64) error
	ListRecommendedUsers(ctx context.Context, userID int64) ([]*db.RecommendedUserRow, error)
}
