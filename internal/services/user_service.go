package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrFullNameRequired = errors.New("full name is required")
	ErrEmailRequired    = errors.New("email is required")
)

// UserService handles user profiles
type UserService struct {
	userRepo  repository.UserRepository
	badgeRepo repository.BadgeRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, badgeRepo repository.BadgeRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		badgeRepo: badgeRepo,
	}
}

// Identity is what the auth provider asserts about the caller.
type Identity struct {
	UserID   string
	Email    string
	Role     models.UserRole
	FullName string
}

// Provision returns the profile row for an authenticated identity, creating
// it on first sight. The stored role wins over the token's afterwards.
func (s *UserService) Provision(ctx context.Context, id Identity) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id.UserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if strings.TrimSpace(id.Email) == "" {
		return nil, ErrEmailRequired
	}

	role := id.Role
	if !role.Valid() {
		role = models.UserRoleTeamMember
	}

	fullName := strings.TrimSpace(id.FullName)
	if fullName == "" {
		fullName = strings.Split(id.Email, "@")[0]
	}

	user = &models.User{
		ID:       id.UserID,
		Email:    id.Email,
		FullName: fullName,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}
	return user, nil
}

// ProfileView is the settings page model
type ProfileView struct {
	User          models.User        `json:"user"`
	Level         int                `json:"level"`
	LevelProgress int                `json:"level_progress"`
	Badges        []models.UserBadge `json:"badges"`
}

// Profile returns the session user's profile with derived level.
func (s *UserService) Profile(ctx context.Context, sess Session) (*ProfileView, error) {
	user, err := s.userRepo.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	badges, err := s.badgeRepo.ListUserBadges(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}

	return &ProfileView{
		User:          *user,
		Level:         user.Level(),
		LevelProgress: user.LevelProgress(),
		Badges:        badges,
	}, nil
}

// UpdateProfile changes the session user's display name.
func (s *UserService) UpdateProfile(ctx context.Context, sess Session, fullName string) (*models.User, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, ErrFullNameRequired
	}

	if err := s.userRepo.UpdateFullName(ctx, sess.UserID, fullName); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.userRepo.FindByID(ctx, sess.UserID)
}
