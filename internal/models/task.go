package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

// AllTaskStatuses is also the board column order.
var AllTaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	}
	return false
}

// CanTransitionTo reports whether a task may move to next. Every valid status
// is reachable from every other, including done back to todo.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	return next.Valid()
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

var AllTaskPriorities = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID             string       `gorm:"type:varchar(36);primarykey" json:"id"`
	ProjectID      string       `gorm:"type:varchar(36);not null;index" json:"project_id"`
	Title          string       `gorm:"type:varchar(255);not null" json:"title"`
	Description    *string      `gorm:"type:text" json:"description,omitempty"`
	Status         TaskStatus   `gorm:"type:varchar(20);not null;default:'todo';index" json:"status"`
	AssignedTo     *string      `gorm:"type:varchar(36);index" json:"assigned_to,omitempty"`
	EstimatedHours *float64     `json:"estimated_hours,omitempty"`
	BillableHours  *float64     `json:"billable_hours,omitempty"`
	Priority       TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Deadline       *time.Time   `gorm:"index" json:"deadline,omitempty"`
	CreatedBy      string       `gorm:"type:varchar(36);not null" json:"created_by"`
	OrderIndex     int          `gorm:"not null;default:0" json:"order_index"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	// Relations
	Project  Project   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	Assignee *User     `gorm:"foreignKey:AssignedTo" json:"-"`
	Creator  User      `gorm:"foreignKey:CreatedBy" json:"-"`
	Subtasks []Subtask `gorm:"foreignKey:TaskID" json:"-"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}

type Subtask struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`
	TaskID    string    `gorm:"type:varchar(36);not null;index" json:"task_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Task Task `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
}

func (s *Subtask) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	return nil
}
