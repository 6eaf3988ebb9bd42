package handlers

import (
	"errors"
	"strconv"

	"lingualink/backend-api/internal/db"
	"lingualink/backend-api/internal/middleware"
	"lingualink/backend-api/internal/services/social"
	"lingualink/backend-api/pkg/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SocialHandlers struct {
	service social.Service
	config  config.Config
	logger  *zap.Logger
}

func NewSocialHandlers(service social.Service, cfg config.Config, logger *zap.Logger) *SocialHandlers {
	return &SocialHandlers{
		service: service,
		config:  cfg,
		logger:  logger,
	}
}

type FriendRequestResponse struct {
	RequestID   string `json:"request_id"`
	SenderID    int64  `json:"sender_id"`
	RecipientID int64  `json:"recipient_id"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type FriendResponse struct {
	UserID           int64  `json:"user_id"`
	FullName         string `json:"full_name"`
	ProfilePic       string `json:"profile_pic"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"native_language"`
	LearningLanguage string `json:"learning_language"`
	IsFavorite       bool   `json:"is_favorite"`
}

type IncomingRequestResponse struct {
	RequestID        string `json:"request_id"`
	SenderID         int64  `json:"sender_id"`
	FullName         string `json:"full_name"`
	ProfilePic       string `json:"profile_pic"`
	NativeLanguage   string `json:"native_language"`
	LearningLanguage string `json:"learning_language"`
	CreatedAt        string `json:"created_at"`
}

type OutgoingRequestResponse struct {
	RequestID        string `json:"request_id"`
	RecipientID      int64  `json:"recipient_id"`
	FullName         string `json:"full_name"`
	ProfilePic       string `json:"profile_pic"`
	NativeLanguage   string `json:"native_language"`
	LearningLanguage string `json:"learning_language"`
	CreatedAt        string `json:"created_at"`
}

const timeLayout = "2006-01-02T15:04:05Z"

func newFriendRequestResponse(req *db.FriendRequest) FriendRequestResponse {
	return FriendRequestResponse{
		RequestID:   req.RequestID,
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		Status:      req.Status,
		CreatedAt:   req.CreatedAt.Time.Format(timeLayout),
	}
}

func newOutgoingRequestResponses(rows []*db.OutgoingRequestRow) []OutgoingRequestResponse {
	out := make([]OutgoingRequestResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, OutgoingRequestResponse{
			RequestID:        row.RequestID,
			RecipientID:      row.RecipientID,
			FullName:         row.FullName,
			ProfilePic:       row.ProfilePic,
			NativeLanguage:   row.NativeLanguage,
			LearningLanguage: row.LearningLanguage,
			CreatedAt:        row.CreatedAt.Time.Format(timeLayout),
		})
	}
	return out
}

// SendFriendRequest handles POST /api/users/friend-request/:id
func (h *SocialHandlers) SendFriendRequest(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	recipientID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	req, err := h.service.SendFriendRequest(c.Context(), userID, recipientID)
	if err != nil {
		switch {
		case errors.Is(err, social.ErrCannotFriendSelf):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, social.ErrRecipientNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, social.ErrAlreadyFriends), errors.Is(err, social.ErrRequestAlreadyExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			h.logger.Error("Failed to send friend request",
				zap.Int64("sender_id", userID),
				zap.Int64("recipient_id", recipientID),
				zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to send friend request",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"friend_request": newFriendRequestResponse(req),
	})
}

// AcceptFriendRequest handles PUT /api/users/friend-request/:id/accept
func (h *SocialHandlers) AcceptFriendRequest(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	requestID := c.Params("id")
	if requestID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request ID",
		})
	}

	if err := h.service.AcceptFriendRequest(c.Context(), requestID, userID); err != nil {
		switch {
		case errors.Is(err, social.ErrRequestNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, social.ErrNotRequestRecipient):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, social.ErrRequestNotPending):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			h.logger.Error("Failed to accept friend request",
				zap.String("request_id", requestID),
				zap.Int64("user_id", userID),
				zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to accept friend request",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Friend request accepted",
	})
}

// GetFriends handles GET /api/users/friends
func (h *SocialHandlers) GetFriends(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	friends, err := h.service.ListFriends(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list friends", zap.Int64("user_id", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list friends",
		})
	}

	out := make([]FriendResponse, 0, len(friends))
	for _, row := range friends {
		out = append(out, FriendResponse{
			UserID:           row.FriendID,
			FullName:         row.FullName,
			ProfilePic:       row.ProfilePic,
			Bio:              row.Bio,
			NativeLanguage:   row.NativeLanguage,
			LearningLanguage: row.LearningLanguage,
			IsFavorite:       row.IsFavorite == 1,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"friends": out,
	})
}

// GetFriendRequests handles GET /api/users/friend-requests. It returns
// the incoming pending requests plus the sender's accepted requests,
// which the client uses as its notification feed.
func (h *SocialHandlers) GetFriendRequests(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	incoming, err := h.service.ListIncomingRequests(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list incoming requests", zap.Int64("user_id", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list friend requests",
		})
	}

	accepted, err := h.service.ListOutgoingAcceptedRequests(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list accepted requests", zap.Int64("user_id", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list friend requests",
		})
	}

	incomingOut := make([]IncomingRequestResponse, 0, len(incoming))
	for _, row := range incoming {
		incomingOut = append(incomingOut, IncomingRequestResponse{
			RequestID:        row.RequestID,
			SenderID:         row.SenderID,
			FullName:         row.FullName,
			ProfilePic:       row.ProfilePic,
			NativeLanguage:   row.NativeLanguage,
			LearningLanguage: row.LearningLanguage,
			CreatedAt:        row.CreatedAt.Time.Format(timeLayout),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"incoming_requests": incomingOut,
		"accepted_requests": newOutgoingRequestResponses(accepted),
	})
}

// GetOutgoingFriendRequests handles GET /api/users/outgoing-friend-requests
func (h *SocialHandlers) GetOutgoingFriendRequests(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	pending, err := h.service.ListOutgoingPendingRequests(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list outgoing requests", zap.Int64("user_id", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list outgoing friend requests",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"outgoing_requests": newOutgoingRequestResponses(pending),
	})
}
