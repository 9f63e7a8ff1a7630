package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/playshelf/backend/internal/middleware"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications, middleware.RequireActor)
	g.GET("/notifications/unread-count", h.GetUnreadCount, middleware.RequireActor)
	g.PUT("/notifications/read-all", h.MarkAllAsRead, middleware.RequireActor)
	g.PUT("/notifications/:id/read", h.MarkAsRead, middleware.RequireActor)
}

// GetNotifications returns paginated notifications
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	page, limit := pagination(c)
	notifications, total, err := h.notifications.List(c.Request().Context(), middleware.ActorFrom(c), page, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{
		"notifications": notifications,
		"pagination":    pageMeta(page, limit, total),
	})
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notifications.UnreadCount(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"unread_count": count})
}

// MarkAsRead marks a single notification of the caller as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.notifications.MarkRead(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"read": true})
}

func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	if err := h.notifications.MarkAllRead(c.Request().Context(), middleware.ActorFrom(c)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"read": true})
}
