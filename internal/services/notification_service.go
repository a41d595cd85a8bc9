package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/repository"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService handles in-app notifications and their optional email copy
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	mailer           Mailer
}

// NewNotificationService creates a new NotificationService. mailer may be nil.
func NewNotificationService(notificationRepo repository.NotificationRepository, userRepo repository.UserRepository, mailer Mailer) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		mailer:           mailer,
	}
}

// NotifyInput represents input for notifying a user
type NotifyInput struct {
	UserID  string
	Title   string
	Message string
	Type    models.NotificationType
	Link    *string
}

// Notify stores a notification for a user and emails it when a mailer is set.
func (s *NotificationService) Notify(ctx context.Context, input NotifyInput) (*models.Notification, error) {
	if input.Type == "" {
		input.Type = models.NotificationInfo
	}
	if !input.Type.Valid() || input.UserID == "" || input.Title == "" {
		return nil, ErrInvalidInput
	}

	n := &models.Notification{
		UserID:  input.UserID,
		Title:   input.Title,
		Message: input.Message,
		Type:    input.Type,
		Link:    input.Link,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	if s.mailer != nil {
		s.email(ctx, n)
	}
	return n, nil
}

func (s *NotificationService) email(ctx context.Context, n *models.Notification) {
	user, err := s.userRepo.FindByID(ctx, n.UserID)
	if err != nil {
		log.Printf("[notifications] recipient lookup failed: %v", err)
		return
	}

	mail := NotificationMail{Title: n.Title, Message: n.Message}
	if n.Link != nil {
		mail.Link = *n.Link
	}
	if err := s.mailer.SendNotification(user.Email, mail); err != nil {
		log.Printf("[notifications] %v", err)
	}
}

// List returns the session user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, sess Session, unreadOnly bool) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, sess.UserID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead marks one of the session user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, sess Session, id string) error {
	if err := s.notificationRepo.MarkRead(ctx, id, sess.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
