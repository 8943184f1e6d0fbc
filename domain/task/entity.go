package task

import (
	"time"

	"github.com/example/task-management/domain/audit"
	"github.com/example/task-management/domain/teammember"
)

// Status is the workflow state of a task. Stored and received on the wire
// as a raw integer; always range-checked before casting.
type Status int

const (
	StatusTodo Status = iota
	StatusInProgress
	StatusReview
	StatusCompleted
	StatusBlocked
)

// IsValid reports whether the value is a defined status.
func (s Status) IsValid() bool {
	return s >= StatusTodo && s <= StatusBlocked
}

// String returns the status name used in responses.
func (s Status) String() string {
	switch s {
	case StatusTodo:
		return "Todo"
	case StatusInProgress:
		return "InProgress"
	case StatusReview:
		return "Review"
	case StatusCompleted:
		return "Completed"
	case StatusBlocked:
		return "Blocked"
	default:
		return "Unknown"
	}
}

// Priority is the urgency of a task. Higher values sort first in listings.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

// IsValid reports whether the value is a defined priority.
func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityCritical
}

// String returns the priority name used in responses.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// Task is a trackable unit of work. AssignedToID is a weak reference: the
// storage layer enforces no cascade, assignment consistency is entirely
// lifecycle-service logic.
type Task struct {
	ID           string  `gorm:"primarykey;size:36" json:"id"`
	audit.Fields `gorm:"embedded"`
	Title        string                 `gorm:"size:200;not null" json:"title"`
	Description  *string                `gorm:"size:2000" json:"description,omitempty"`
	Status       Status                 `gorm:"not null;default:0;index" json:"status"`
	Priority     Priority               `gorm:"not null;default:1;index" json:"priority"`
	AssignedToID *string                `gorm:"size:36;index" json:"assigned_to_id,omitempty"`
	AssignedTo   *teammember.TeamMember `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	DueDate      time.Time              `gorm:"not null;index" json:"due_date"`
	CompletedAt  *time.Time             `json:"completed_at,omitempty"`
}

// TableName returns the table name for the Task model.
func (Task) TableName() string {
	return "tasks"
}
