package dto

import (
	"time"

	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	FullName      string          `json:"full_name"`
	Role          models.UserRole `json:"role"`
	AvatarURL     *string         `json:"avatar_url,omitempty"`
	XPPoints      int             `json:"xp_points"`
	Level         int             `json:"level"`
	LevelProgress int             `json:"level_progress"`
}

// UserSummaryDTO is the short form embedded in other resources
type UserSummaryDTO struct {
	ID        string  `json:"id"`
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// BadgeDTO represents an earned badge
type BadgeDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	XPRequired  int       `json:"xp_required"`
	EarnedAt    time.Time `json:"earned_at"`
}

// ProfileDTO is the settings page
type ProfileDTO struct {
	User   UserDTO    `json:"user"`
	Badges []BadgeDTO `json:"badges"`
}

func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:            user.ID,
		Email:         user.Email,
		FullName:      user.FullName,
		Role:          user.Role,
		AvatarURL:     user.AvatarURL,
		XPPoints:      user.XPPoints,
		Level:         user.Level(),
		LevelProgress: user.LevelProgress(),
	}
}

func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = ToUserDTO(u)
	}
	return out
}

// ToUserSummaryDTO returns nil when the relation was not loaded
func ToUserSummaryDTO(user *models.User) *UserSummaryDTO {
	if user == nil || user.ID == "" {
		return nil
	}
	return &UserSummaryDTO{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
	}
}

func ToProfileDTO(view services.ProfileView) ProfileDTO {
	badges := make([]BadgeDTO, len(view.Badges))
	for i, ub := range view.Badges {
		badges[i] = BadgeDTO{
			ID:          ub.Badge.ID,
			Name:        ub.Badge.Name,
			Description: ub.Badge.Description,
			Icon:        ub.Badge.Icon,
			XPRequired:  ub.Badge.XPRequired,
			EarnedAt:    ub.EarnedAt,
		}
	}
	return ProfileDTO{User: ToUserDTO(view.User), Badges: badges}
}
