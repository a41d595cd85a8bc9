package handlers

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-ops-api/internal/constants"
	"github.com/yukikurage/studio-ops-api/internal/dto"
	apierrors "github.com/yukikurage/studio-ops-api/internal/errors"
	"github.com/yukikurage/studio-ops-api/internal/middleware"
	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/services"
)

// AuthHandler binds provider-issued tokens to the session cookie.
type AuthHandler struct {
	verifier *middleware.TokenVerifier
	users    *services.UserService
	activity *services.ActivityService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(verifier *middleware.TokenVerifier, users *services.UserService, activity *services.ActivityService) *AuthHandler {
	return &AuthHandler{
		verifier: verifier,
		users:    users,
		activity: activity,
	}
}

// LoginPage describes how to sign in. Signed-in users never reach it.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"authenticated": false,
		"login":         "POST /login with an access token from the auth provider",
	})
}

// Login verifies an access token and stores it in the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		AccessToken string `json:"access_token" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	claims, err := h.verifier.Verify(req.AccessToken)
	if err != nil {
		apierrors.Unauthorized(c, "Invalid access token")
		return
	}

	user, err := h.users.Provision(c.Request.Context(), services.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   models.UserRole(claims.Role),
	})
	if err != nil {
		respondError(c, "auth", err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyToken, req.AccessToken)
	if err := session.Save(); err != nil {
		log.Printf("[auth] failed to save session: %v", err)
		apierrors.OperationFailed(c)
		return
	}

	h.record(c, services.Session{UserID: user.ID, Role: user.Role}, models.ActivityLogin)
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Logout removes the token from the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess, ok := middleware.GetSession(c); ok {
		h.record(c, sess, models.ActivityLogout)
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Printf("[auth] failed to clear session: %v", err)
		apierrors.OperationFailed(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	profile, err := h.users.Profile(c.Request.Context(), sess)
	if err != nil {
		respondError(c, "auth", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(profile.User))
}

func (h *AuthHandler) record(c *gin.Context, sess services.Session, t models.ActivityType) {
	if h.activity == nil {
		return
	}
	if _, err := h.activity.Record(c.Request.Context(), sess, services.RecordActivityInput{Type: t}); err != nil {
		log.Printf("[auth] %v", err)
	}
}
