package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/studio-ops-api/internal/errors"
	"github.com/yukikurage/studio-ops-api/internal/middleware"
	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/services"
)

var validationErrors = []error{
	services.ErrInvalidInput,
	services.ErrFullNameRequired,
	services.ErrEmailRequired,
	services.ErrProjectNameRequired,
	services.ErrInvalidProjectStatus,
	services.ErrInvalidMemberRole,
	services.ErrNotAClient,
	services.ErrTitleRequired,
	services.ErrTitleEmpty,
	services.ErrInvalidTaskStatus,
	services.ErrInvalidTaskPriority,
	services.ErrInvalidTaskAssignee,
	services.ErrNegativeHours,
	services.ErrNoFilesProvided,
	services.ErrFileURLRequired,
	services.ErrNegativeFileSize,
	services.ErrFolderWrongParent,
	services.ErrFolderNameRequired,
	services.ErrCommentContentRequired,
	services.ErrCommentTargetMismatch,
	services.ErrInvalidInvoiceStatus,
	services.ErrNegativeAmount,
	services.ErrDueBeforeIssue,
	services.ErrItemDescriptionNeeded,
	services.ErrAINoTasksGenerated,
	models.ErrFolderCycle,
}

var notFoundErrors = []error{
	services.ErrProjectNotFound,
	services.ErrTaskNotFound,
	services.ErrSubtaskNotFound,
	services.ErrAssetNotFound,
	services.ErrCommentNotFound,
	services.ErrFolderNotFound,
	services.ErrInvoiceNotFound,
	services.ErrUserNotFound,
	services.ErrNotificationNotFound,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// currentSession returns the caller or answers 401
func currentSession(c *gin.Context) (services.Session, bool) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return services.Session{}, false
	}
	return sess, true
}

// respondList answers a collection read. A backend failure is logged and the
// page gets an empty collection under key.
func respondList(c *gin.Context, component, key string, items interface{}, err error) {
	if err != nil {
		if isAny(err, validationErrors) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		if isAny(err, notFoundErrors) {
			apierrors.NotFound(c, err.Error())
			return
		}
		log.Printf("[%s] read failed: %v", component, err)
		c.JSON(http.StatusOK, gin.H{key: []interface{}{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{key: items})
}

// respondError maps a service error to the API envelope. Anything that is not
// a validation, permission or lookup problem is a failed operation.
func respondError(c *gin.Context, component string, err error) {
	switch {
	case isAny(err, validationErrors):
		apierrors.BadRequest(c, err.Error())
	case isAny(err, notFoundErrors):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())
	default:
		log.Printf("[%s] operation failed: %v", component, err)
		apierrors.OperationFailed(c)
	}
}

func optionalQuery(c *gin.Context, key string) *string {
	if v := c.Query(key); v != "" {
		return &v
	}
	return nil
}
