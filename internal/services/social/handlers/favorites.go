package handlers

import (
	"errors"
	"strconv"

	"lingualink/backend-api/internal/middleware"
	"lingualink/backend-api/internal/services/social"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AddFavorite handles POST /api/users/friends/:id/favorite
func (h *SocialHandlers) AddFavorite(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	targetID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	if err := h.service.AddFavorite(c.Context(), userID, targetID); err != nil {
		if errors.Is(err, social.ErrNotFriends) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Failed to add favorite",
			zap.Int64("user_id", userID),
			zap.Int64("target_id", targetID),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add favorite",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Friend favorited",
	})
}

// RemoveFavorite handles DELETE /api/users/friends/:id/favorite
func (h *SocialHandlers) RemoveFavorite(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	targetID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	if err := h.service.RemoveFavorite(c.Context(), userID, targetID); err != nil {
		h.logger.Error("Failed to remove favorite",
			zap.Int64("user_id", userID),
			zap.Int64("target_id", targetID),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove favorite",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Friend unfavorited",
	})
}
