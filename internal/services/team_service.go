package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/repository"
	"gorm.io/gorm"
)

// TeamService builds the team page: leaderboard, activity and badges
type TeamService struct {
	userRepo  repository.UserRepository
	badgeRepo repository.BadgeRepository
	activity  *ActivityService
}

// NewTeamService creates a new TeamService
func NewTeamService(userRepo repository.UserRepository, badgeRepo repository.BadgeRepository, activity *ActivityService) *TeamService {
	return &TeamService{
		userRepo:  userRepo,
		badgeRepo: badgeRepo,
		activity:  activity,
	}
}

// LeaderboardEntry is one ranked member
type LeaderboardEntry struct {
	Rank          int         `json:"rank"`
	User          models.User `json:"user"`
	Level         int         `json:"level"`
	LevelProgress int         `json:"level_progress"`
}

// Leaderboard ranks active users by experience points
type Leaderboard struct {
	Entries      []LeaderboardEntry `json:"entries"`
	TotalXP      int                `json:"total_xp"`
	AverageLevel float64            `json:"average_level"`
}

// Leaderboard returns active users ordered by XP, highest first
func (s *TeamService) Leaderboard(ctx context.Context) (*Leaderboard, error) {
	users, err := s.userRepo.ListActiveByXP(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list team: %w", err)
	}
	return BuildLeaderboard(users), nil
}

// BuildLeaderboard ranks users in the order given
func BuildLeaderboard(users []models.User) *Leaderboard {
	board := &Leaderboard{Entries: make([]LeaderboardEntry, len(users))}

	levels := 0
	for i, u := range users {
		board.Entries[i] = LeaderboardEntry{
			Rank:          i + 1,
			User:          u,
			Level:         u.Level(),
			LevelProgress: u.LevelProgress(),
		}
		board.TotalXP += u.XPPoints
		levels += u.Level()
	}
	if len(users) > 0 {
		avg := float64(levels) / float64(len(users))
		board.AverageLevel = math.Round(avg*10) / 10
	}
	return board
}

// RecentActivity returns the latest team activity with actors
func (s *TeamService) RecentActivity(ctx context.Context) ([]models.TeamActivity, error) {
	return s.activity.Recent(ctx)
}

// AwardEligibleBadges grants every badge the user's XP now qualifies for and
// returns the newly granted ones.
func (s *TeamService) AwardEligibleBadges(ctx context.Context, userID string) ([]models.Badge, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	badges, err := s.badgeRepo.ListBadges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	held, err := s.badgeRepo.ListUserBadges(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user badges: %w", err)
	}

	owned := make(map[string]bool, len(held))
	for _, ub := range held {
		owned[ub.BadgeID] = true
	}

	eligible := models.EligibleBadges(user.XPPoints, badges, owned)
	if len(eligible) == 0 {
		return eligible, nil
	}

	ids := make([]string, len(eligible))
	for i, b := range eligible {
		ids[i] = b.ID
	}
	if err := s.badgeRepo.Award(ctx, userID, ids); err != nil {
		return nil, fmt.Errorf("failed to award badges: %w", err)
	}
	return eligible, nil
}
