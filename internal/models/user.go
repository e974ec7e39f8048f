// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account. Users are immutable after
// registration; there is no profile update or delete surface.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Gender    string    `json:"gender"`
	CreatedAt time.Time `json:"created_at"`

	Tweets []Tweet `gorm:"foreignKey:UserID" json:"tweets,omitempty"`
}
