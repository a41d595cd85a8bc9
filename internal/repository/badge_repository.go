package repository

import (
	"context"

	"github.com/yukikurage/studio-ops-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBadgeRepository is a GORM implementation of BadgeRepository
type GormBadgeRepository struct {
	db *gorm.DB
}

// NewBadgeRepository creates a new BadgeRepository
func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &GormBadgeRepository{db: db}
}

func (r *GormBadgeRepository) ListBadges(ctx context.Context) ([]models.Badge, error) {
	var badges []models.Badge
	err := r.db.WithContext(ctx).Order("xp_required ASC").Find(&badges).Error
	return badges, err
}

func (r *GormBadgeRepository) ListUserBadges(ctx context.Context, userID string) ([]models.UserBadge, error) {
	var owned []models.UserBadge
	err := r.db.WithContext(ctx).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at ASC").
		Find(&owned).Error
	return owned, err
}

// Award grants badges to a user, ignoring ones already held
func (r *GormBadgeRepository) Award(ctx context.Context, userID string, badgeIDs []string) error {
	if len(badgeIDs) == 0 {
		return nil
	}

	awards := make([]models.UserBadge, len(badgeIDs))
	for i, badgeID := range badgeIDs {
		awards[i] = models.UserBadge{
			UserID:  userID,
			BadgeID: badgeID,
		}
	}

	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
			DoNothing: true,
		}).
		Create(&awards).Error
}
