package auth

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"lingualink/backend-api/internal/db"
	"lingualink/backend-api/internal/db/types"
	"lingualink/backend-api/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	config  config.Config
	logger  *zap.Logger
	dbConn  db.DBTX
	queries *db.Queries
}

func NewAuthService(cfg config.Config, logger *zap.Logger, dbConn db.DBTX) Service {
	return &authService{
		config:  cfg,
		logger:  logger,
		dbConn:  dbConn,
		queries: db.New(),
	}
}

func (s *authService) Authenticate(ctx context.Context, email, password string) (*db.User, error) {
	user, err := s.queries.GetUserByEmail(ctx, s.dbConn, email)
	if err != nil {
		s.logger.Debug("GetUserByEmail failed", zap.String("email", email), zap.Error(err))
		return nil, ErrInvalidCredentials
	}

	if !s.verifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	if err := s.queries.UpdateUserLastLogin(ctx, s.dbConn, user.UserID); err != nil {
		// Non-fatal: the login itself succeeded
		s.logger.Warn("Failed to update last login", zap.Int64("user_id", user.UserID), zap.Error(err))
	}

	return user, nil
}

func (s *authService) RegisterUser(ctx context.Context, email, fullName, password string) (*db.User, error) {
	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.queries.CreateUser(ctx, s.dbConn, &db.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		ProfilePic:   randomAvatarURL(),
	})
	if err != nil {
		if s.isDuplicateError(err, "email") {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user, err := s.queries.GetUser(ctx, s.dbConn, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}

	return user, nil
}

func (s *authService) GenerateAccessToken(userID int64) (string, error) {
	exp := time.Now().Add(s.config.JWT.AccessExpiration)
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWT.Secret))
}

func (s *authService) CreateSession(ctx context.Context, userID int64, ipAddress, userAgent string) (string, error) {
	refreshToken, err := s.generateRefreshToken(userID)
	if err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiresAt := time.Now().Add(s.config.JWT.RefreshExpiration)
	params := &db.CreateSessionParams{
		UserID:    userID,
		Token:     refreshToken,
		ExpiresAt: types.Timestamp{Time: expiresAt},
		IpAddress: &ipAddress,
		UserAgent: &userAgent,
	}
	if ipAddress == "" {
		params.IpAddress = nil
	}
	if userAgent == "" {
		params.UserAgent = nil
	}

	err = s.queries.CreateSession(ctx, s.dbConn, params)
	if err != nil {
		s.logger.Error("CreateSession query failed", zap.Error(err))
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return refreshToken, nil
}

func (s *authService) RefreshSession(ctx context.Context, oldToken, ipAddress, userAgent string) (int64, string, error) {
	userID, err := s.validateRefreshToken(ctx, oldToken)
	if err != nil {
		return 0, "", err
	}

	// Delete old session
	err = s.DeleteSession(ctx, oldToken)
	if err != nil {
		return 0, "", fmt.Errorf("failed to delete old session: %w", err)
	}

	// Create new session
	newToken, err := s.CreateSession(ctx, userID, ipAddress, userAgent)
	if err != nil {
		return 0, "", fmt.Errorf("failed to create new session: %w", err)
	}
	return userID, newToken, nil
}

func (s *authService) DeleteSession(ctx context.Context, token string) error {
	err := s.queries.DeleteSession(ctx, s.dbConn, token)
	if err != nil {
		s.logger.Error("DeleteSession query failed", zap.Error(err))
	}
	return err
}

func (s *authService) ValidateToken(tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*jwt.RegisteredClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// Internal helpers

func (s *authService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *authService) verifyPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (s *authService) isDuplicateError(err error, column string) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed: users."+column)
}

// randomAvatarURL picks one of the 100 stock avatars assigned at
// signup; users replace it during onboarding.
func randomAvatarURL() string {
	idx := rand.Intn(100) + 1
	return fmt.Sprintf("https://avatar.iran.liara.run/public/%d.png", idx)
}

func (s *authService) generateRefreshToken(userID int64) (string, error) {
	exp := time.Now().Add(s.config.JWT.RefreshExpiration)
	randBytes := make([]byte, 16)
	if _, err := cryptorand.Read(randBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	jti := hex.EncodeToString(randBytes)
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        jti,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWT.Secret))
}

func (s *authService) validateRefreshToken(ctx context.Context, token string) (int64, error) {
	claims, err := s.ValidateToken(token)
	if err != nil {
		return 0, ErrInvalidRefreshToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidRefreshToken
	}

	session, err := s.queries.GetSessionByToken(ctx, s.dbConn, token)
	if err != nil {
		return 0, ErrSessionNotFound
	}
	if session.ExpiresAt.Time.Before(time.Now()) {
		_ = s.queries.DeleteSession(ctx, s.dbConn, token)
		return 0, ErrInvalidRefreshToken
	}
	if session.UserID != userID {
		return 0, ErrInvalidRefreshToken
	}
	return userID, nil
}
