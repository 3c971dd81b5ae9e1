package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nanotasks/internal/auth"
	"nanotasks/internal/services"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// List returns the authenticated user's notifications.
// GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	notifications, err := h.notificationService.ListByUser(c.Request.Context(), principal.Email)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkAllRead marks the authenticated user's notifications as read.
// PATCH /api/notifications/read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), principal.Email); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"read": true})
}
