package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusflow/disruption-service/internal/api/dto"
	"github.com/campusflow/disruption-service/internal/auth"
	"github.com/campusflow/disruption-service/internal/service"
	apperrors "github.com/campusflow/disruption-service/pkg/util"
)

// NotificationsHandler serves a user's in-app notifications.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notificationService}
}

// List GET /api/notifications. Callers only ever see their own records.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	notifications, err := h.notifications.ListForUser(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, dto.NotificationResponse{
			ID:           notifications[i].ID,
			DisruptionID: notifications[i].DisruptionID,
			Channel:      string(notifications[i].Channel),
			Payload:      notifications[i].Payload,
			IsRead:       notifications[i].IsRead,
			CreatedAt:    notifications[i].CreatedAt,
		})
	}
	return c.JSON(items)
}
