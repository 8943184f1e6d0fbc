// Package audit holds the timestamp fields shared by all persisted
// entities, embedded as a value rather than inherited.
package audit

import "time"

// Fields carries creation and modification timestamps. CreatedAt is set
// once when the entity is created; UpdatedAt is stamped on every mutating
// operation after creation.
type Fields struct {
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
