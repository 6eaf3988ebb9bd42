package middleware

import (
	"errors"
	"fmt"
	"strings"

	"lingualink/backend-api/internal/services/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	// UserIDKey is the key used to store the user ID in Fiber's locals.
	UserIDKey = "user_id"
	// ClaimsKey is the key used to store JWT claims in Fiber's locals.
	ClaimsKey = "claims"
)

var (
	// ErrMissingToken indicates the Authorization header is missing or malformed.
	ErrMissingToken = errors.New("missing or malformed authorization header")
	// ErrInvalidToken indicates the token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthMiddleware creates a middleware that validates JWT tokens.
func AuthMiddleware(authService auth.Service, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Extract token from Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.Debug("missing Authorization header")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrMissingToken.Error(),
			})
		}

		// Check Bearer prefix
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			logger.Debug("malformed Authorization header", zap.String("header", authHeader))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrMissingToken.Error(),
			})
		}

		tokenString := parts[1]
		if tokenString == "" {
			logger.Debug("empty token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrMissingToken.Error(),
			})
		}

		// Validate token
		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			logger.Debug("token validation failed", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrInvalidToken.Error(),
			})
		}

		// Extract user ID from subject claim
		userID, err := parseUserID(claims.Subject)
		if err != nil {
			logger.Debug("invalid user ID in token", zap.String("subject", claims.Subject), zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrInvalidToken.Error(),
			})
		}

		// Store user ID and claims in locals for downstream handlers
		c.Locals(UserIDKey, userID)
		c.Locals(ClaimsKey, claims)

		logger.Debug("token validated", zap.Int64("user_id", userID))
		return c.Next()
	}
}

// parseUserID converts a string subject to an int64 user ID.
func parseUserID(subject string) (int64, error) {
	if subject == "" {
		return 0, errors.New("empty subject")
	}
	var userID int64
	_, err := fmt.Sscanf(subject, "%d", &userID)
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// GetUserID retrieves the user ID from Fiber's locals.
func GetUserID(c *fiber.Ctx) (int64, bool) {
	userID, ok := c.Locals(UserIDKey).(int64)
	return userID, ok
}

// GetClaims retrieves JWT claims from Fiber's locals.
func GetClaims(c *fiber.Ctx) (*jwt.RegisteredClaims, bool) {
	claims, ok := c.Locals(ClaimsKey).(*jwt.RegisteredClaims)
	return claims, ok
}
