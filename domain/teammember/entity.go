package teammember

import (
	"github.com/example/task-management/domain/audit"
)

// TeamMember is a person who can be assigned tasks. Inactive members keep
// their record but cannot receive new assignments.
type TeamMember struct {
	ID           string  `gorm:"primarykey;size:36" json:"id"`
	audit.Fields `gorm:"embedded"`
	Name         string  `gorm:"size:100;not null" json:"name"`
	Email        string  `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Role         *string `gorm:"size:100" json:"role,omitempty"`
	IsActive     bool    `gorm:"not null;default:true" json:"is_active"`
}

// TableName returns the table name for the TeamMember model.
func (TeamMember) TableName() string {
	return "team_members"
}
