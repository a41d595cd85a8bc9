package dto

import (
	"time"

	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/services"
)

// CommentDTO represents a piece of feedback
type CommentDTO struct {
	ID           string          `json:"id"`
	Content      string          `json:"content"`
	Author       *UserSummaryDTO `json:"author,omitempty"`
	ProjectID    *string         `json:"project_id,omitempty"`
	ProjectName  string          `json:"project_name,omitempty"`
	AssetID      *string         `json:"asset_id,omitempty"`
	AssetName    string          `json:"asset_name,omitempty"`
	TaskID       *string         `json:"task_id,omitempty"`
	ParentID     *string         `json:"parent_id,omitempty"`
	Pinned       bool            `json:"pinned"`
	PinX         *float64        `json:"pin_x,omitempty"`
	PinY         *float64        `json:"pin_y,omitempty"`
	PinTimestamp *float64        `json:"pin_timestamp,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// FeedbackGroupDTO is one project's feedback
type FeedbackGroupDTO struct {
	Project  string       `json:"project"`
	Comments []CommentDTO `json:"comments"`
}

func ToCommentDTO(c models.Comment) CommentDTO {
	dto := CommentDTO{
		ID:           c.ID,
		Content:      c.Content,
		Author:       ToUserSummaryDTO(&c.Author),
		ProjectID:    c.ProjectID,
		AssetID:      c.AssetID,
		TaskID:       c.TaskID,
		ParentID:     c.ParentID,
		Pinned:       c.Pinned(),
		PinX:         c.PinX,
		PinY:         c.PinY,
		PinTimestamp: c.PinTimestamp,
		CreatedAt:    c.CreatedAt,
	}
	if c.Project != nil {
		dto.ProjectName = c.Project.Name
	}
	if c.Asset != nil {
		dto.AssetName = c.Asset.Name
	}
	return dto
}

func ToFeedbackGroupDTOs(groups []services.Group[models.Comment]) []FeedbackGroupDTO {
	out := make([]FeedbackGroupDTO, len(groups))
	for i, g := range groups {
		comments := make([]CommentDTO, len(g.Items))
		for j, c := range g.Items {
			comments[j] = ToCommentDTO(c)
		}
		out[i] = FeedbackGroupDTO{Project: g.Key, Comments: comments}
	}
	return out
}
