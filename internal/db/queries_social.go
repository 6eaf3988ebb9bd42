package db

import (
	"context"
)

// CreateFriendRequestParams holds a new pending request. PairLo and
// PairHi must be the smaller and larger of the two user IDs; the
// UNIQUE(pair_lo, pair_hi) index is what prevents a second request
// between the same pair in either direction.
type CreateFriendRequestParams struct {
	RequestID   string
	SenderID    int64
	RecipientID int64
	PairLo      int64
	PairHi      int64
}

// CreateFriendRequest inserts a pending friend request.
func (q *Queries) CreateFriendRequest(ctx context.Context, db DBTX, params *CreateFriendRequestParams) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO friend_requests (request_id, sender_id, recipient_id, status, pair_lo, pair_hi)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		params.RequestID, params.SenderID, params.RecipientID,
		FriendRequestPending, params.PairLo, params.PairHi)
	return err
}

// GetFriendRequest returns the request with the given ID.
func (q *Queries) GetFriendRequest(ctx context.Context, db DBTX, requestID string) (*FriendRequest, error) {
	row := db.QueryRowContext(ctx,
		`SELECT request_id, sender_id, recipient_id, status, created_at, updated_at
		 FROM friend_requests WHERE request_id = ?`, requestID)
	var r FriendRequest
	err := row.Scan(&r.RequestID, &r.SenderID, &r.RecipientID, &r.Status,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateFriendRequestStatusParams identifies a request and its new status.
type UpdateFriendRequestStatusParams struct {
	RequestID string
	Status    string
}

// UpdateFriendRequestStatus transitions a request's status.
func (q *Queries) UpdateFriendRequestStatus(ctx context.Context, db DBTX, params *UpdateFriendRequestStatusParams) error {
	_, err := db.ExecContext(ctx,
		`UPDATE friend_requests
		 SET status = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		 WHERE request_id = ?`,
		params.Status, params.RequestID)
	return err
}

// ListIncomingPending returns pending requests addressed to the user,
// with sender profile fields.
func (q *Queries) ListIncomingPending(ctx context.Context, db DBTX, userID int64) ([]*IncomingRequestRow, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT r.request_id, r.sender_id, u.full_name, u.profile_pic,
		        u.native_language, u.learning_language, r.created_at
		 FROM friend_requests r
		 JOIN users u ON u.user_id = r.sender_id
		 WHERE r.recipient_id = ? AND r.status = ?`,
		userID, FriendRequestPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []*IncomingRequestRow
	for rows.Next() {
		var r IncomingRequestRow
		if err := rows.Scan(&r.RequestID, &r.SenderID, &r.FullName,
			&r.ProfilePic, &r.NativeLanguage, &r.LearningLanguage,
			&r.CreatedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, &r)
	}
	return reqs, rows.Err()
}

// ListOutgoingByStatusParams selects requests sent by a user in a
// given status.
type ListOutgoingByStatusParams struct {
	SenderID int64
	Status   string
}

// ListOutgoingByStatus returns requests sent by the user with the
// given status, with recipient profile fields. Used both for the
// pending list and for the accepted-request notification feed.
func (q *Queries) ListOutgoingByStatus(ctx context.Context, db DBTX, params *ListOutgoingByStatusParams) ([]*OutgoingRequestRow, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT r.request_id, r.recipient_id, u.full_name, u.profile_pic,
		        u.native_language, u.learning_language, r.created_at
		 FROM friend_requests r
		 JOIN users u ON u.user_id = r.recipient_id
		 WHERE r.sender_id = ? AND r.status = ?`,
		params.SenderID, params.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []*OutgoingRequestRow
	for rows.Next() {
		var r OutgoingRequestRow
		if err := rows.Scan(&r.RequestID, &r.RecipientID, &r.FullName,
			&r.ProfilePic, &r.NativeLanguage, &r.LearningLanguage,
			&r.CreatedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, &r)
	}
	return reqs, rows.Err()
}

// FriendshipPairParams identifies one direction of a friend edge.
type FriendshipPairParams struct {
	UserID   int64
	FriendID int64
}

// InsertFriendship adds one direction of a friend edge. Idempotent:
// re-inserting an existing row is a no-op.
func (q *Queries) InsertFriendship(ctx context.Context, db DBTX, params *FriendshipPairParams) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO friendships (user_id, friend_id) VALUES (?, ?)`,
		params.UserID, params.FriendID)
	return err
}

// FriendshipExists reports whether friend_id is in user_id's friend set.
func (q *Queries) FriendshipExists(ctx context.Context, db DBTX, params *FriendshipPairParams) (bool, error) {
	var count int64
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM friendships WHERE user_id = ? AND friend_id = ?`,
		params.UserID, params.FriendID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListFriends returns the user's friends with profile fields and the
// derived is_favorite flag.
func (q *Queries) ListFriends(ctx context.Context, db DBTX, userID int64) ([]*FriendRow, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT f.friend_id, u.full_name, u.profile_pic, u.bio,
		        u.native_language, u.learning_language,
		        CASE WHEN fav.friend_id IS NULL THEN 0 ELSE 1 END AS is_favorite
		 FROM friendships f
		 JOIN users u ON u.user_id = f.friend_id
		 LEFT JOIN favorites fav
		   ON fav.user_id = f.user_id AND fav.friend_id = f.friend_id
		 WHERE f.user_id = ?`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var friends []*FriendRow
	for rows.Next() {
		var f FriendRow
		if err := rows.Scan(&f.FriendID, &f.FullName, &f.ProfilePic, &f.Bio,
			&f.NativeLanguage, &f.LearningLanguage, &f.IsFavorite); err != nil {
			return nil, err
		}
		friends = append(friends, &f)
	}
	return friends, rows.Err()
}

// AddFavorite marks a friend as a favorite. Idempotent.
func (q *Queries) AddFavorite(ctx context.Context, db DBTX, params *FriendshipPairParams) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO favorites (user_id, friend_id) VALUES (?, ?)`,
		params.UserID, params.FriendID)
	return err
}

// RemoveFavorite unmarks a favorite. Removing a non-favorite is a no-op.
func (q *Queries) RemoveFavorite(ctx context.Context, db DBTX, params *FriendshipPairParams) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND friend_id = ?`,
		params.UserID, params.FriendID)
	return err
}
