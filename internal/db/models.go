package db

import (
	"lingualink/backend-api/internal/db/types"
)

// FriendRequest status values.
const (
	FriendRequestPending  = "pending"
	FriendRequestAccepted = "accepted"
)

// User is a row in the users table.
type User struct {
	UserID           int64
	Email            string
	PasswordHash     string
	FullName         string
	ProfilePic       string
	Bio              string
	NativeLanguage   string
	LearningLanguage string
	Location         string
	IsOnboarded      int64
	CreatedAt        types.Timestamp
	UpdatedAt        types.Timestamp
	LastLoginAt      types.NullTimestamp
}

// FriendRequest is a row in the friend_requests table. Accepted rows
// are kept forever as the edge/audit record for the pair.
type FriendRequest struct {
	RequestID   string
	SenderID    int64
	RecipientID int64
	Status      string
	CreatedAt   types.Timestamp
	UpdatedAt   types.Timestamp
}

// Friendship is one direction of a symmetric friend edge. Edges are
// always written as two mirror rows in a single transaction.
type Friendship struct {
	UserID    int64
	FriendID  int64
	CreatedAt types.Timestamp
}

// Session is a refresh-token session row.
type Session struct {
	SessionID int64
	UserID    int64
	Token     string
	ExpiresAt types.Timestamp
	CreatedAt types.Timestamp
	IpAddress *string
	UserAgent *string
}

// FriendRow is a friend entry joined with profile fields and the
// derived favorite flag.
type FriendRow struct {
	FriendID         int64
	FullName         string
	ProfilePic       string
	Bio              string
	NativeLanguage   string
	LearningLanguage string
	IsFavorite       int64
}

// IncomingRequestRow is a pending request joined with sender profile.
type IncomingRequestRow struct {
	RequestID        string
	SenderID         int64
	FullName         string
	ProfilePic       string
	NativeLanguage   string
	LearningLanguage string
	CreatedAt        types.Timestamp
}

// OutgoingRequestRow is a request sent by a user joined with recipient
// profile. Used for both the pending list and the accepted
// notification feed.
type OutgoingRequestRow struct {
	RequestID        string
	RecipientID      int64
	FullName         string
	ProfilePic       string
	NativeLanguage   string
	LearningLanguage string
	CreatedAt        types.Timestamp
}

// RecommendedUserRow is a candidate profile for the recommendation
// list.
type RecommendedUserRow struct {
	UserID           int64
	FullName         string
	ProfilePic       string
	Bio              string
	NativeLanguage   string
	LearningLanguage string
	Location         string
}
