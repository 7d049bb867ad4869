package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/http/dto"
	"github.com/shopfloor/shopfloor/internal/httputil"
	"github.com/shopfloor/shopfloor/internal/usecase"
)

// NotificationHandler lists and acknowledges stored notifications.
type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	logger              *slog.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{notificationUseCase: notificationUseCase, logger: logger}
}

// ListHandler lists unread (default) or read notifications.
// GET /v1/notifications?status=unread|read&offset=&limit=
func (h *NotificationHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var notifications []*domain.Notification
	switch status := c.DefaultQuery("status", "unread"); status {
	case "unread":
		notifications, err = h.notificationUseCase.ListUnread(c.Request.Context())
	case "read":
		notifications, err = h.notificationUseCase.ListRead(c.Request.Context())
	default:
		httputil.HandleBadRequestGin(c,
			fmt.Errorf("invalid status parameter: must be unread or read"),
			h.logger)
		return
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapNotificationsToListResponse(httputil.Page(notifications, offset, limit)))
}

// MarkAsReadHandler flags a notification as read. Repeating the call is harmless.
// POST /v1/notifications/:id/read
func (h *NotificationHandler) MarkAsReadHandler(c *gin.Context) {
	notificationID, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	n, err := h.notificationUseCase.MarkAsRead(c.Request.Context(), notificationID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapNotificationToResponse(n))
}
