package middleware

import (
	"slices"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/studio-ops-api/internal/errors"
	"github.com/yukikurage/studio-ops-api/internal/models"
)

// RequireRoles allows only users holding one of roles
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := GetSession(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}
		if !slices.Contains(roles, sess.Role) {
			apierrors.Forbidden(c, "Your role does not allow this action")
			return
		}
		c.Next()
	}
}

// RequireWorkRole allows admins and team members
func RequireWorkRole() gin.HandlerFunc {
	return RequireRoles(models.UserRoleAdmin, models.UserRoleTeamMember)
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(models.UserRoleAdmin)
}
