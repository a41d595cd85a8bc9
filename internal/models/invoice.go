package models

import (
	"time"

	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

var AllInvoiceStatuses = []InvoiceStatus{InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue}

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// Outstanding reports whether the invoice still counts as pending revenue.
func (s InvoiceStatus) Outstanding() bool {
	switch s {
	case InvoiceStatusSent, InvoiceStatusOverdue:
		return true
	case InvoiceStatusDraft, InvoiceStatusPaid:
		return false
	}
	return false
}

type Invoice struct {
	ID            string        `gorm:"type:varchar(36);primarykey" json:"id"`
	ProjectID     *string       `gorm:"type:varchar(36);index" json:"project_id,omitempty"`
	ClientID      string        `gorm:"type:varchar(36);not null;index" json:"client_id"`
	InvoiceNumber string        `gorm:"type:varchar(64);uniqueIndex;not null" json:"invoice_number"`
	Status        InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	IssueDate     time.Time     `gorm:"not null" json:"issue_date"`
	DueDate       time.Time     `gorm:"not null" json:"due_date"`
	Subtotal      float64       `gorm:"not null;default:0" json:"subtotal"`
	Tax           float64       `gorm:"not null;default:0" json:"tax"`
	Total         float64       `gorm:"not null;default:0" json:"total"`
	Notes         *string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy     string        `gorm:"type:varchar(36);not null" json:"created_by"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Relations
	Project *Project      `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	Client  User          `gorm:"foreignKey:ClientID" json:"-"`
	Creator User          `gorm:"foreignKey:CreatedBy" json:"-"`
	Items   []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"-"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	assignID(&i.ID)
	return nil
}

// PastDue reports whether the due date has passed for an unpaid invoice. It is
// informational only and never changes Status.
func (i Invoice) PastDue(now time.Time) bool {
	switch i.Status {
	case InvoiceStatusPaid, InvoiceStatusDraft:
		return false
	case InvoiceStatusSent, InvoiceStatusOverdue:
		return now.After(i.DueDate)
	}
	return false
}

type InvoiceItem struct {
	ID          string  `gorm:"type:varchar(36);primarykey" json:"id"`
	InvoiceID   string  `gorm:"type:varchar(36);not null;index" json:"invoice_id"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Quantity    float64 `gorm:"not null;default:1" json:"quantity"`
	Rate        float64 `gorm:"not null;default:0" json:"rate"`
	Amount      float64 `gorm:"not null;default:0" json:"amount"`
	TaskID      *string `gorm:"type:varchar(36)" json:"task_id,omitempty"`

	Invoice Invoice `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"-"`
}

func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	assignID(&i.ID)
	return nil
}

// InvoiceSequence holds the last issued invoice counter for a calendar year.
type InvoiceSequence struct {
	Year  int `gorm:"primarykey;autoIncrement:false" json:"year"`
	Value int `gorm:"not null;default:0" json:"value"`
}
