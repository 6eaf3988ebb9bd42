package db

import (
	"context"
)

const userColumns = `user_id, email, password_hash, full_name, profile_pic, bio,
	native_language, learning_language, location, is_onboarded,
	created_at, updated_at, last_login_at`

func scanUser(row interface {
	Scan(dest ...interface{}) error
}) (*User, error) {
	var u User
	err := row.Scan(
		&u.UserID, &u.Email, &u.PasswordHash, &u.FullName, &u.ProfilePic,
		&u.Bio, &u.NativeLanguage, &u.LearningLanguage, &u.Location,
		&u.IsOnboarded, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUserParams holds the fields set at signup.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	FullName     string
	ProfilePic   string
}

// CreateUser inserts a new user row and returns its generated ID.
func (q *Queries) CreateUser(ctx context.Context, db DBTX, params *CreateUserParams) (int64, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, full_name, profile_pic)
		 VALUES (?, ?, ?, ?)`,
		params.Email, params.PasswordHash, params.FullName, params.ProfilePic)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetUser returns the user with the given ID.
func (q *Queries) GetUser(ctx context.Context, db DBTX, userID int64) (*User, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = ?`, userID)
	return scanUser(row)
}

// GetUserByEmail returns the user with the given email.
func (q *Queries) GetUserByEmail(ctx context.Context, db DBTX, email string) (*User, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// UpdateUserProfileParams holds the onboarding/profile fields.
type UpdateUserProfileParams struct {
	UserID           int64
	FullName         string
	Bio              string
	ProfilePic       string
	NativeLanguage   string
	LearningLanguage string
	Location         string
	IsOnboarded      int64
}

// UpdateUserProfile writes the profile fields and onboarding flag.
func (q *Queries) UpdateUserProfile(ctx context.Context, db DBTX, params *UpdateUserProfileParams) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users
		 SET full_name = ?, bio = ?, profile_pic = ?, native_language = ?,
		     learning_language = ?, location = ?, is_onboarded = ?,
		     updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		 WHERE user_id = ?`,
		params.FullName, params.Bio, params.ProfilePic, params.NativeLanguage,
		params.LearningLanguage, params.Location, params.IsOnboarded,
		params.UserID)
	return err
}

// UpdateUserLastLogin stamps the last successful login.
func (q *Queries) UpdateUserLastLogin(ctx context.Context, db DBTX, userID int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users
		 SET last_login_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		 WHERE user_id = ?`, userID)
	return err
}

// ListRecommendedUsers returns onboarded users excluding the given
// user and everyone in their friend set. Store-native order.
func (q *Queries) ListRecommendedUsers(ctx context.Context, db DBTX, userID int64) ([]*RecommendedUserRow, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT u.user_id, u.full_name, u.profile_pic, u.bio,
		        u.native_language, u.learning_language, u.location
		 FROM users u
		 WHERE u.user_id != ?
		   AND u.is_onboarded = 1
		   AND u.user_id NOT IN (
		       SELECT friend_id FROM friendships WHERE user_id = ?
		   )`,
		userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*RecommendedUserRow
	for rows.Next() {
		var u RecommendedUserRow
		if err := rows.Scan(&u.UserID, &u.FullName, &u.ProfilePic, &u.Bio,
			&u.NativeLanguage, &u.LearningLanguage, &u.Location); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}
