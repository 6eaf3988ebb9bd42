package testutils

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"lingualink/backend-api/internal/services/auth"
	"lingualink/backend-api/pkg/config"

	"go.uber.org/zap/zaptest"
	_ "modernc.org/sqlite"
)

func GetTestConfig() config.Config {
	return config.Config{
		Database: config.DatabaseConfig{
			Path:           ":memory:",
			MigrationsPath: "./migrations",
		},
		Server: config.ServerConfig{
			Host:              "localhost",
			Port:              5001,
			CORSAllowOrigins:  "http://localhost:5173",
			RateLimitMax:      1000,
			RateLimitDuration: time.Minute,
		},
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			AccessExpiration:  15 * time.Minute,
			RefreshExpiration: 7 * 24 * time.Hour,
		},
	}
}

// SetupTestDB opens an in-memory database with the application schema.
// The pool is pinned to one connection so concurrent test goroutines
// share the same in-memory database.
func SetupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	// Create tables (simplified for test utility, in a real app use migrations)
	createTables(t, db)
	return db
}

func createTables(t *testing.T, db *sql.DB) {
	tables := []string{
		`CREATE TABLE users (
            user_id INTEGER PRIMARY KEY AUTOINCREMENT,
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            full_name TEXT NOT NULL,
            profile_pic TEXT NOT NULL DEFAULT '',
            bio TEXT NOT NULL DEFAULT '',
            native_language TEXT NOT NULL DEFAULT '',
            learning_language TEXT NOT NULL DEFAULT '',
            location TEXT NOT NULL DEFAULT '',
            is_onboarded INTEGER NOT NULL DEFAULT 0,
            created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
            updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
            last_login_at TEXT
        );`,
		`CREATE TABLE sessions (
            session_id INTEGER PRIMARY KEY AUTOINCREMENT,
            user_id INTEGER NOT NULL,
            token TEXT NOT NULL UNIQUE,
            expires_at TEXT NOT NULL,
            created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
            ip_address TEXT,
            user_agent TEXT,
            FOREIGN KEY (user_id) REFERENCES users (user_id) ON DELETE CASCADE
        );`,
		`CREATE TABLE friend_requests (
            request_id TEXT PRIMARY KEY,
            sender_id INTEGER NOT NULL,
            recipient_id INTEGER NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'accepted')),
            pair_lo INTEGER NOT NULL,
            pair_hi INTEGER NOT NULL,
            created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
            updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
            FOREIGN KEY (sender_id) REFERENCES users (user_id) ON DELETE CASCADE,
            FOREIGN KEY (recipient_id) REFERENCES users (user_id) ON DELETE CASCADE
        );`,
		`CREATE UNIQUE INDEX idx_friend_requests_pair ON friend_requests (pair_lo, pair_hi);`,
		`CREATE INDEX idx_friend_requests_recipient ON friend_requests (recipient_id, status);`,
		`CREATE INDEX idx_friend_requests_sender ON friend_requests (sender_id, status);`,
		`CREATE TABLE friendships (
            user_id INTEGER NOT NULL,
            friend_id INTEGER NOT NULL,
            created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
            PRIMARY KEY (user_id, friend_id),
            FOREIGN KEY (user_id) REFERENCES users (user_id) ON DELETE CASCADE,
            FOREIGN KEY (friend_id) REFERENCES users (user_id) ON DELETE CASCADE
        );`,
		`CREATE TABLE favorites (
            user_id INTEGER NOT NULL,
            friend_id INTEGER NOT NULL,
            created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
            PRIMARY KEY (user_id, friend_id),
            FOREIGN KEY (user_id) REFERENCES users (user_id) ON DELETE CASCADE,
            FOREIGN KEY (friend_id) REFERENCES users (user_id) ON DELETE CASCADE
        );`,
	}

	for _, sql := range tables {
		if _, err := db.Exec(sql); err != nil {
			t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, sql)
		}
	}
}

func CreateTestUser(t *testing.T, dbConn *sql.DB, email, fullName, password string) int64 {
	logger := zaptest.NewLogger(t)
	cfg := GetTestConfig()
	service := auth.NewAuthService(cfg, logger, dbConn)

	user, err := service.RegisterUser(context.Background(), email, fullName, password)
	if err != nil {
		t.Fatalf("Failed to register user: %v", err)
	}
	return user.UserID
}

// CreateOnboardedUser creates a user and fills in the profile fields so
// the user shows up in recommendations.
func CreateOnboardedUser(t *testing.T, dbConn *sql.DB, email, fullName, password string) int64 {
	userID := CreateTestUser(t, dbConn, email, fullName, password)
	_, err := dbConn.Exec(
		`UPDATE users SET bio = ?, native_language = ?, learning_language = ?, location = ?, is_onboarded = 1 WHERE user_id = ?`,
		"Test bio", "English", "Spanish", "Testville", userID)
	if err != nil {
		t.Fatalf("Failed to onboard user: %v", err)
	}
	return userID
}

func CreateTestAccessToken(t *testing.T, dbConn *sql.DB, userID int64) string {
	logger := zaptest.NewLogger(t)
	cfg := GetTestConfig()
	service := auth.NewAuthService(cfg, logger, dbConn)
	token, err := service.GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("Failed to generate access token: %v", err)
	}
	return token
}

func CreateTestSession(t *testing.T, dbConn *sql.DB, userID int64) string {
	logger := zaptest.NewLogger(t)
	cfg := GetTestConfig()
	service := auth.NewAuthService(cfg, logger, dbConn)
	ctx := context.Background()
	token, err := service.CreateSession(ctx, userID, "127.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return token
}
