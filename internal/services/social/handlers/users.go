package handlers

import (
	"lingualink/backend-api/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RecommendedUserResponse struct {
	UserID           int64  `json:"user_id"`
	FullName         string `json:"full_name"`
	ProfilePic       string `json:"profile_pic"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"native_language"`
	LearningLanguage string `json:"learning_language"`
	Location         string `json:"location"`
}

// GetRecommendedUsers handles GET /api/users. Candidates are onboarded
// users who are neither the caller nor already friends with them.
func (h *SocialHandlers) GetRecommendedUsers(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	users, err := h.service.ListRecommendedUsers(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list recommended users", zap.Int64("user_id", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list recommended users",
		})
	}

	out := make([]RecommendedUserResponse, 0, len(users))
	for _, row := range users {
		out = append(out, RecommendedUserResponse{
			UserID:           row.UserID,
			FullName:         row.FullName,
			ProfilePic:       row.ProfilePic,
			Bio:              row.Bio,
			NativeLanguage:   row.NativeLanguage,
			LearningLanguage: row.LearningLanguage,
			Location:         row.Location,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"recommended_users": out,
	})
}
