package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/yukikurage/studio-ops-api/internal/constants"
	apierrors "github.com/yukikurage/studio-ops-api/internal/errors"
	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/services"
)

var ErrInvalidToken = errors.New("invalid access token")

// Claims are the fields the auth provider signs into an access token
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenVerifier checks HS256 access tokens issued by the auth provider
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify parses a token and returns its claims. The subject is required.
func (v *TokenVerifier) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Provisioner returns the profile row for an authenticated identity
type Provisioner interface {
	Provision(ctx context.Context, id services.Identity) (*models.User, error)
}

// Authenticate resolves the caller from the session token or a Bearer header.
// Unauthenticated requests pass through; RequireAuth and PageGate decide what
// they may reach.
func Authenticate(verifier *TokenVerifier, users Provisioner) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw == "" {
			c.Next()
			return
		}

		claims, err := verifier.Verify(raw)
		if err != nil {
			c.Next()
			return
		}

		user, err := users.Provision(c.Request.Context(), services.Identity{
			UserID: claims.Subject,
			Email:  claims.Email,
			Role:   models.UserRole(claims.Role),
		})
		if err != nil {
			log.Printf("[auth] provisioning %s failed: %v", claims.Subject, err)
			c.Next()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUserRole, user.Role)
		c.Set(constants.ContextKeyEmail, user.Email)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}

	session := sessions.Default(c)
	if token, ok := session.Get(constants.SessionKeyToken).(string); ok {
		return token
	}
	return ""
}

// RequireAuth rejects requests without an authenticated user
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := GetUserID(c); !exists {
			apierrors.Unauthorized(c, "")
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}

// GetSession returns the caller as seen by the services
func GetSession(c *gin.Context) (services.Session, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return services.Session{}, false
	}
	role, _ := c.Get(constants.ContextKeyUserRole)
	r, _ := role.(models.UserRole)
	return services.Session{UserID: userID, Role: r}, true
}
