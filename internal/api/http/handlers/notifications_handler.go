package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lifecycle-service/internal/api/dto"
	"github.com/spec-kit/lifecycle-service/internal/domain"
	"github.com/spec-kit/lifecycle-service/internal/repository"
	"github.com/spec-kit/lifecycle-service/internal/service"
)

// NotificationsHandler exposes notification reads for the dashboard.
type NotificationsHandler struct {
	notifications repository.NotificationRepository
	unread        *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notifications repository.NotificationRepository, unread *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications, unread: unread}
}

// List handles GET /notifications. With entity_type and entity_id query
// parameters the listing narrows to one campaign or order.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	entityType := c.Query("entity_type")
	entityID := c.Query("entity_id")

	var (
		records []domain.Notification
		err     error
	)
	if entityType != "" && entityID != "" {
		records, err = h.notifications.ListByEntity(c.UserContext(), domain.EntityType(entityType), entityID, c.QueryInt("limit", 50))
	} else {
		records, err = h.notifications.ListRecent(c.UserContext(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewNotificationResponses(records)})
}

// UnreadCount handles GET /notifications/unread/:target.
func (h *NotificationsHandler) UnreadCount(c *fiber.Ctx) error {
	target := domain.NotificationTarget(c.Params("target"))
	count, err := h.unread.UnreadCount(c.UserContext(), target)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"target": string(target), "unread": count}})
}

// MarkRead handles POST /notifications/unread/:target/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	target := domain.NotificationTarget(c.Params("target"))
	if err := h.unread.MarkRead(c.UserContext(), target); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"target": string(target), "unread": 0}})
}
