package middleware

import (
	"context"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-ops-api/internal/constants"
	apierrors "github.com/yukikurage/studio-ops-api/internal/errors"
	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/services"
)

// ProjectFinder looks up a project the session is allowed to see
type ProjectFinder interface {
	GetProject(ctx context.Context, sess services.Session, id string) (*models.Project, error)
}

// RequireProjectAccess loads the project named by the :id parameter into the
// context. Projects the caller may not see answer 404 so their existence does
// not leak.
func RequireProjectAccess(projects ProjectFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := GetSession(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		project, err := projects.GetProject(c.Request.Context(), sess, c.Param("id"))
		if err != nil {
			if !errors.Is(err, services.ErrProjectNotFound) {
				log.Printf("[projects] access check failed: %v", err)
			}
			apierrors.NotFound(c, "Project not found")
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// GetProject returns the project loaded by RequireProjectAccess
func GetProject(c *gin.Context) (*models.Project, bool) {
	v, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return nil, false
	}
	project, ok := v.(*models.Project)
	return project, ok
}
