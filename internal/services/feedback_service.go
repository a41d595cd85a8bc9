package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/studio-ops-api/internal/constants"
	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCommentContentRequired = errors.New("comment content is required")
	ErrCommentNotFound        = errors.New("comment not found")
	ErrCommentTargetMismatch  = errors.New("comment targets belong to different projects")
)

// FeedbackService handles comments left on projects and assets
type FeedbackService struct {
	commentRepo repository.CommentRepository
	assetRepo   repository.AssetRepository
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	activity    *ActivityService
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(commentRepo repository.CommentRepository, assetRepo repository.AssetRepository, taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, activity *ActivityService) *FeedbackService {
	return &FeedbackService{
		commentRepo: commentRepo,
		assetRepo:   assetRepo,
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		activity:    activity,
	}
}

// CreateCommentInput represents input for leaving feedback
type CreateCommentInput struct {
	ProjectID    *string
	AssetID      *string
	TaskID       *string
	ParentID     *string
	Content      string
	PinX         *float64
	PinY         *float64
	PinTimestamp *float64
}

// ListFeedback returns comments newest first, grouped by project name.
// Comments without a project land in the General bucket.
func (s *FeedbackService) ListFeedback(ctx context.Context, projectID *string) ([]Group[models.Comment], error) {
	comments, err := s.commentRepo.List(ctx, repository.CommentFilter{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return GroupFeedback(comments), nil
}

// GroupFeedback partitions comments by project and labels each bucket with
// the project name. Projectless comments share one General bucket that never
// merges with a project, even one named General.
func GroupFeedback(comments []models.Comment) []Group[models.Comment] {
	groups := GroupBy(comments, func(c models.Comment) string {
		if c.ProjectID == nil {
			return ""
		}
		return *c.ProjectID
	})

	for i := range groups {
		first := groups[i].Items[0]
		switch {
		case first.ProjectID == nil:
			groups[i].Key = constants.GeneralFeedbackGroup
		case first.Project != nil:
			groups[i].Key = first.Project.Name
		default:
			groups[i].Key = *first.ProjectID
		}
	}
	return groups
}

// CreateComment stores a comment from the session user. A comment on an
// asset, task or reply inherits that target's project, and every target must
// sit in the same project. Clients may only comment on their own projects.
func (s *FeedbackService) CreateComment(ctx context.Context, sess Session, input CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrCommentContentRequired
	}

	projectID, err := s.resolveProject(ctx, input)
	if err != nil {
		return nil, err
	}
	if projectID != nil {
		project, err := s.projectRepo.FindByID(ctx, *projectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
		if sess.IsClient() && (project.ClientID == nil || *project.ClientID != sess.UserID) {
			return nil, ErrProjectNotFound
		}
	}

	comment := &models.Comment{
		ProjectID:    projectID,
		AssetID:      input.AssetID,
		TaskID:       input.TaskID,
		ParentID:     input.ParentID,
		UserID:       sess.UserID,
		Content:      content,
		PinX:         input.PinX,
		PinY:         input.PinY,
		PinTimestamp: input.PinTimestamp,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	activity := RecordActivityInput{Type: models.ActivityComment, Metadata: map[string]interface{}{"pinned": comment.Pinned()}}
	switch {
	case comment.AssetID != nil:
		activity.EntityType, activity.EntityID = entity(models.EntityAsset), comment.AssetID
	case comment.TaskID != nil:
		activity.EntityType, activity.EntityID = entity(models.EntityTask), comment.TaskID
	case comment.ProjectID != nil:
		activity.EntityType, activity.EntityID = entity(models.EntityProject), comment.ProjectID
	}
	s.activity.recordQuietly(ctx, sess, activity)

	return comment, nil
}

// resolveProject returns the single project shared by the comment's targets,
// or nil for a general comment.
func (s *FeedbackService) resolveProject(ctx context.Context, input CreateCommentInput) (*string, error) {
	projectID := input.ProjectID
	join := func(target *string) error {
		switch {
		case projectID == nil:
			projectID = target
		case target == nil || *target != *projectID:
			return ErrCommentTargetMismatch
		}
		return nil
	}

	if input.AssetID != nil {
		asset, err := s.assetRepo.FindByID(ctx, *input.AssetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssetNotFound
			}
			return nil, fmt.Errorf("failed to find asset: %w", err)
		}
		if err := join(&asset.ProjectID); err != nil {
			return nil, err
		}
	}

	if input.TaskID != nil {
		task, err := s.taskRepo.FindByID(ctx, *input.TaskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTaskNotFound
			}
			return nil, fmt.Errorf("failed to find task: %w", err)
		}
		if err := join(&task.ProjectID); err != nil {
			return nil, err
		}
	}

	if input.ParentID != nil {
		parent, err := s.commentRepo.FindByID(ctx, *input.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCommentNotFound
			}
			return nil, fmt.Errorf("failed to find parent comment: %w", err)
		}
		if projectID != nil || parent.ProjectID != nil {
			if err := join(parent.ProjectID); err != nil {
				return nil, err
			}
		}
	}

	return projectID, nil
}
