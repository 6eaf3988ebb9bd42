package handlers

import (
	"errors"

	"lingualink/backend-api/internal/db"
	"lingualink/backend-api/internal/services/auth"
	"lingualink/backend-api/pkg/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandlers struct {
	service auth.Service
	config  config.Config
	logger  *zap.Logger
}

func NewAuthHandlers(service auth.Service, cfg config.Config, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		service: service,
		config:  cfg,
		logger:  logger,
	}
}

type SignupRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	UserID           int64  `json:"user_id"`
	Email            string `json:"email"`
	FullName         string `json:"full_name"`
	ProfilePic       string `json:"profile_pic"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"native_language"`
	LearningLanguage string `json:"learning_language"`
	Location         string `json:"location"`
	IsOnboarded      bool   `json:"is_onboarded"`
	CreatedAt        string `json:"created_at"`
}

type TokenResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// NewUserResponse converts a user row to its API shape.
func NewUserResponse(user *db.User) UserResponse {
	return UserResponse{
		UserID:           user.UserID,
		Email:            user.Email,
		FullName:         user.FullName,
		ProfilePic:       user.ProfilePic,
		Bio:              user.Bio,
		NativeLanguage:   user.NativeLanguage,
		LearningLanguage: user.LearningLanguage,
		Location:         user.Location,
		IsOnboarded:      user.IsOnboarded == 1,
		CreatedAt:        user.CreatedAt.Time.Format("2006-01-02T15:04:05Z"),
	}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandlers) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Email == "" || req.FullName == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email, full_name and password are required",
		})
	}
	if len(req.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "password must be at least 6 characters",
		})
	}

	user, err := h.service.RegisterUser(c.Context(), req.Email, req.FullName, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Failed to register user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to register user",
		})
	}

	return h.respondWithTokens(c, user, fiber.StatusCreated)
}

// Login handles POST /api/auth/login
func (h *AuthHandlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email and password are required",
		})
	}

	user, err := h.service.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Failed to authenticate user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log in",
		})
	}

	return h.respondWithTokens(c, user, fiber.StatusOK)
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandlers) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "refresh_token is required",
		})
	}

	userID, newToken, err := h.service.RefreshSession(c.Context(), req.RefreshToken, c.IP(), c.Get("User-Agent"))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRefreshToken) || errors.Is(err, auth.ErrSessionNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Failed to refresh session", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to refresh session",
		})
	}

	accessToken, err := h.service.GenerateAccessToken(userID)
	if err != nil {
		h.logger.Error("Failed to generate access token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to refresh session",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": newToken,
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandlers) Logout(c *fiber.Ctx) error {
	var req LogoutRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "refresh_token is required",
		})
	}

	if err := h.service.DeleteSession(c.Context(), req.RefreshToken); err != nil {
		h.logger.Error("Failed to delete session", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log out",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "logged_out",
	})
}

func (h *AuthHandlers) respondWithTokens(c *fiber.Ctx, user *db.User, status int) error {
	accessToken, err := h.service.GenerateAccessToken(user.UserID)
	if err != nil {
		h.logger.Error("Failed to generate access token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to issue tokens",
		})
	}

	refreshToken, err := h.service.CreateSession(c.Context(), user.UserID, c.IP(), c.Get("User-Agent"))
	if err != nil {
		h.logger.Error("Failed to create session", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to issue tokens",
		})
	}

	return c.Status(status).JSON(TokenResponse{
		User:         NewUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}
