package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-ops-api/internal/dto"
	apierrors "github.com/yukikurage/studio-ops-api/internal/errors"
	"github.com/yukikurage/studio-ops-api/internal/services"
)

type FeedbackHandler struct {
	feedback *services.FeedbackService
}

func NewFeedbackHandler(feedback *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// ListFeedback returns comments grouped by project
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	groups, err := h.feedback.ListFeedback(c.Request.Context(), optionalQuery(c, "project_id"))
	respondList(c, "feedback", "groups", dto.ToFeedbackGroupDTOs(groups), err)
}

// CreateComment leaves feedback on a project, an asset or a task. Asset
// comments may carry a pin position.
func (h *FeedbackHandler) CreateComment(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	type CreateCommentRequest struct {
		ProjectID    *string  `json:"project_id"`
		AssetID      *string  `json:"asset_id"`
		TaskID       *string  `json:"task_id"`
		ParentID     *string  `json:"parent_id"`
		Content      string   `json:"content"`
		PinX         *float64 `json:"pin_x"`
		PinY         *float64 `json:"pin_y"`
		PinTimestamp *float64 `json:"pin_timestamp"`
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.feedback.CreateComment(c.Request.Context(), sess, services.CreateCommentInput{
		ProjectID:    req.ProjectID,
		AssetID:      req.AssetID,
		TaskID:       req.TaskID,
		ParentID:     req.ParentID,
		Content:      req.Content,
		PinX:         req.PinX,
		PinY:         req.PinY,
		PinTimestamp: req.PinTimestamp,
	})
	if err != nil {
		respondError(c, "feedback", err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}
