package dto

import (
	"encoding/json"
	"time"

	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/services"
)

// ActivityDTO represents one team activity entry
type ActivityDTO struct {
	ID         string                     `json:"id"`
	Type       models.ActivityType        `json:"activity_type"`
	EntityType *models.ActivityEntityType `json:"entity_type,omitempty"`
	EntityID   *string                    `json:"entity_id,omitempty"`
	Metadata   json.RawMessage            `json:"metadata,omitempty"`
	Actor      *UserSummaryDTO            `json:"actor,omitempty"`
	CreatedAt  time.Time                  `json:"created_at"`
}

// LeaderboardEntryDTO is one ranked member
type LeaderboardEntryDTO struct {
	Rank          int     `json:"rank"`
	User          UserDTO `json:"user"`
	Level         int     `json:"level"`
	LevelProgress int     `json:"level_progress"`
}

// TeamDTO is the team page
type TeamDTO struct {
	Leaderboard  []LeaderboardEntryDTO `json:"leaderboard"`
	TotalXP      int                   `json:"total_xp"`
	AverageLevel float64               `json:"average_level"`
	Activity     []ActivityDTO         `json:"activity"`
}

func ToActivityDTO(a models.TeamActivity) ActivityDTO {
	dto := ActivityDTO{
		ID:         a.ID,
		Type:       a.ActivityType,
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		Actor:      ToUserSummaryDTO(&a.Actor),
		CreatedAt:  a.CreatedAt,
	}
	if len(a.Metadata) > 0 {
		dto.Metadata = json.RawMessage(a.Metadata)
	}
	return dto
}

func ToActivityDTOs(activities []models.TeamActivity) []ActivityDTO {
	out := make([]ActivityDTO, len(activities))
	for i, a := range activities {
		out[i] = ToActivityDTO(a)
	}
	return out
}

func ToTeamDTO(board services.Leaderboard, activity []models.TeamActivity) TeamDTO {
	entries := make([]LeaderboardEntryDTO, len(board.Entries))
	for i, e := range board.Entries {
		entries[i] = LeaderboardEntryDTO{
			Rank:          e.Rank,
			User:          ToUserDTO(e.User),
			Level:         e.Level,
			LevelProgress: e.LevelProgress,
		}
	}
	return TeamDTO{
		Leaderboard:  entries,
		TotalXP:      board.TotalXP,
		AverageLevel: board.AverageLevel,
		Activity:     ToActivityDTOs(activity),
	}
}
