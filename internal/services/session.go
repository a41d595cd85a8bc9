package services

import (
	"errors"

	"github.com/yukikurage/studio-ops-api/internal/models"
)

var (
	ErrForbidden    = errors.New("user does not have permission to perform this action")
	ErrInvalidInput = errors.New("invalid input")
)

// Session identifies the caller of every read and write.
type Session struct {
	UserID string
	Role   models.UserRole
}

func (s Session) IsAdmin() bool {
	return s.Role == models.UserRoleAdmin
}

func (s Session) IsClient() bool {
	return s.Role == models.UserRoleClient
}

// CanManageWork reports whether the caller may change projects, tasks,
// folders and assets.
func (s Session) CanManageWork() bool {
	return s.Role.Staff()
}

// CanManageInvoices reports whether the caller may create or change invoices.
func (s Session) CanManageInvoices() bool {
	return s.IsAdmin()
}

func (s Session) requireWork() error {
	if !s.CanManageWork() {
		return ErrForbidden
	}
	return nil
}
