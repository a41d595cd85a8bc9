package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-ops-api/internal/dto"
	apierrors "github.com/yukikurage/studio-ops-api/internal/errors"
	"github.com/yukikurage/studio-ops-api/internal/services"
)

type SettingsHandler struct {
	users         *services.UserService
	notifications *services.NotificationService
}

func NewSettingsHandler(users *services.UserService, notifications *services.NotificationService) *SettingsHandler {
	return &SettingsHandler{users: users, notifications: notifications}
}

// GetSettings returns the caller's profile with level and badges
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	profile, err := h.users.Profile(c.Request.Context(), sess)
	if err != nil {
		respondError(c, "settings", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile))
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	type UpdateSettingsRequest struct {
		FullName string `json:"full_name" binding:"required"`
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), sess, req.FullName)
	if err != nil {
		respondError(c, "settings", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ListNotifications returns the caller's notifications. unread=true skips read ones.
func (h *SettingsHandler) ListNotifications(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	unread, _ := strconv.ParseBool(c.Query("unread"))
	notifications, err := h.notifications.List(c.Request.Context(), sess, unread)
	respondList(c, "notifications", "notifications", notifications, err)
}

func (h *SettingsHandler) MarkNotificationRead(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), sess, c.Param("id")); err != nil {
		respondError(c, "notifications", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
