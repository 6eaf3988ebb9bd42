package db

import (
	"context"

	"lingualink/backend-api/internal/db/types"
)

// CreateSessionParams holds a new refresh-token session.
type CreateSessionParams struct {
	UserID    int64
	Token     string
	ExpiresAt types.Timestamp
	IpAddress *string
	UserAgent *string
}

// CreateSession inserts a session row.
func (q *Queries) CreateSession(ctx context.Context, db DBTX, params *CreateSessionParams) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO sessions (user_id, token, expires_at, ip_address, user_agent)
		 VALUES (?, ?, ?, ?, ?)`,
		params.UserID, params.Token, params.ExpiresAt, params.IpAddress, params.UserAgent)
	return err
}

// GetSessionByToken returns the session with the given refresh token.
func (q *Queries) GetSessionByToken(ctx context.Context, db DBTX, token string) (*Session, error) {
	row := db.QueryRowContext(ctx,
		`SELECT session_id, user_id, token, expires_at, created_at, ip_address, user_agent
		 FROM sessions WHERE token = ?`, token)
	var s Session
	err := row.Scan(&s.SessionID, &s.UserID, &s.Token, &s.ExpiresAt,
		&s.CreatedAt, &s.IpAddress, &s.UserAgent)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSession removes the session with the given token.
func (q *Queries) DeleteSession(ctx context.Context, db DBTX, token string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	return err
}
