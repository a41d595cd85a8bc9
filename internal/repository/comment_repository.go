package repository

import (
	"context"

	"github.com/yukikurage/studio-ops-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

func (r *GormCommentRepository) FindByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// List retrieves comments newest first with author, project and asset
func (r *GormCommentRepository) List(ctx context.Context, filter CommentFilter) ([]models.Comment, error) {
	var comments []models.Comment

	query := r.db.WithContext(ctx).Model(&models.Comment{})
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.AssetID != nil {
		query = query.Where("asset_id = ?", *filter.AssetID)
	}

	err := query.
		Preload("Author").
		Preload("Project").
		Preload("Asset").
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}
