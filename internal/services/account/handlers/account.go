package handlers

import (
	"context"
	"errors"

	"lingualink/backend-api/internal/db"
	"lingualink/backend-api/internal/middleware"
	"lingualink/backend-api/internal/services/account"
	authhandlers "lingualink/backend-api/internal/services/auth/handlers"
	"lingualink/backend-api/pkg/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AccountHandlers struct {
	service account.Service
	config  config.Config
	logger  *zap.Logger
}

func NewAccountHandlers(service account.Service, cfg config.Config, logger *zap.Logger) *AccountHandlers {
	return &AccountHandlers{
		service: service,
		config:  cfg,
		logger:  logger,
	}
}

// ProfileRequest is the payload shared by onboarding and profile edits.
type ProfileRequest struct {
	FullName         string `json:"full_name"`
	Bio              string `json:"bio"`
	ProfilePic       string `json:"profile_pic"`
	NativeLanguage   string `json:"native_language"`
	LearningLanguage string `json:"learning_language"`
	Location         string `json:"location"`
}

func (r *ProfileRequest) toParams() *account.ProfileParams {
	return &account.ProfileParams{
		FullName:         r.FullName,
		Bio:              r.Bio,
		ProfilePic:       r.ProfilePic,
		NativeLanguage:   r.NativeLanguage,
		LearningLanguage: r.LearningLanguage,
		Location:         r.Location,
	}
}

// Me handles GET /api/auth/me
func (h *AccountHandlers) Me(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	user, err := h.service.GetUser(c.Context(), userID)
	if err != nil {
		if errors.Is(err, account.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Failed to get user", zap.Int64("user_id", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get user",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": authhandlers.NewUserResponse(user),
	})
}

// Onboarding handles POST /api/auth/onboarding
func (h *AccountHandlers) Onboarding(c *fiber.Ctx) error {
	return h.saveProfile(c, h.service.CompleteOnboarding, "Failed to complete onboarding")
}

// UpdateProfile handles PUT /api/auth/profile
func (h *AccountHandlers) UpdateProfile(c *fiber.Ctx) error {
	return h.saveProfile(c, h.service.UpdateProfile, "Failed to update profile")
}

type profileWriter func(ctx context.Context, userID int64, params *account.ProfileParams) (*db.User, error)

func (h *AccountHandlers) saveProfile(c *fiber.Ctx, write profileWriter, failureMsg string) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := write(c.Context(), userID, req.toParams())
	if err != nil {
		switch {
		case errors.Is(err, account.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, account.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			h.logger.Error(failureMsg, zap.Int64("user_id", userID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": failureMsg,
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": authhandlers.NewUserResponse(user),
	})
}
