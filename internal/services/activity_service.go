package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/yukikurage/studio-ops-api/internal/constants"
	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/realtime"
	"github.com/yukikurage/studio-ops-api/internal/repository"
	"gorm.io/datatypes"
)

// ChangePublisher announces that a topic changed.
type ChangePublisher interface {
	Publish(topic string, ev realtime.Event)
}

// ActivityService appends to the team activity log and announces each entry.
type ActivityService struct {
	activityRepo repository.ActivityRepository
	publisher    ChangePublisher
}

// NewActivityService creates a new ActivityService. A nil publisher is allowed
// when notifications arrive through the database instead.
func NewActivityService(activityRepo repository.ActivityRepository, publisher ChangePublisher) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		publisher:    publisher,
	}
}

// RecordActivityInput describes one activity log entry
type RecordActivityInput struct {
	Type       models.ActivityType
	EntityType *models.ActivityEntityType
	EntityID   *string
	Metadata   map[string]interface{}
}

// Record appends an entry for the session user.
func (s *ActivityService) Record(ctx context.Context, sess Session, input RecordActivityInput) (*models.TeamActivity, error) {
	if !input.Type.Valid() {
		return nil, ErrInvalidInput
	}
	if input.EntityType != nil && !input.EntityType.Valid() {
		return nil, ErrInvalidInput
	}

	activity := &models.TeamActivity{
		UserID:       sess.UserID,
		ActivityType: input.Type,
		EntityType:   input.EntityType,
		EntityID:     input.EntityID,
	}
	if len(input.Metadata) > 0 {
		raw, err := json.Marshal(input.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode activity metadata: %w", err)
		}
		activity.Metadata = datatypes.JSON(raw)
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to record activity: %w", err)
	}

	if s.publisher != nil {
		s.publisher.Publish(constants.TopicTeamActivity, realtime.Event{ID: activity.ID})
	}
	return activity, nil
}

// recordQuietly records a side-effect entry; a failure is logged and does not
// fail the operation that caused it.
func (s *ActivityService) recordQuietly(ctx context.Context, sess Session, input RecordActivityInput) {
	if s == nil {
		return
	}
	if _, err := s.Record(ctx, sess, input); err != nil {
		log.Printf("[activity] %v", err)
	}
}

// Recent returns the most recent entries with their actors.
func (s *ActivityService) Recent(ctx context.Context) ([]models.TeamActivity, error) {
	activities, err := s.activityRepo.ListRecent(ctx, constants.ActivityFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return activities, nil
}

func entity(t models.ActivityEntityType) *models.ActivityEntityType {
	return &t
}
