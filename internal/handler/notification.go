package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/middleware"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/model"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/repository"
)

const inboxLimit = 50

type NotificationHandler struct {
	repo *repository.NotificationRepo
}

func NewNotificationHandler(repo *repository.NotificationRepo) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

// Inbox handles GET /api/notifications
func (h *NotificationHandler) Inbox(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	notifications, err := h.repo.ListForRecipient(c.Context(), actor.ID, inboxLimit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load notifications")
	}

	unread, err := h.repo.CountUnread(c.Context(), actor.ID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load notifications")
	}

	if notifications == nil {
		notifications = []model.Notification{}
	}
	return c.JSON(model.InboxResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	})
}

// MarkRead handles POST /api/notifications/:notificationId/read
func (h *NotificationHandler) MarkRead(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	notificationID, errMsg := middleware.ValidateUUID(c.Params("notificationId"), "notificationId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	updated, err := h.repo.MarkRead(c.Context(), notificationID, actor.ID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark notification read")
	}
	if !updated {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Notification not found")
	}

	return c.JSON(fiber.Map{"success": true})
}
