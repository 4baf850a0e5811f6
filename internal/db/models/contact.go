package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact is a persisted contact form submission. Rows are immutable once created.
type Contact struct {
	// ID is a random UUID assigned on insert.
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// Name of the sender, trimmed.
	Name string `gorm:"size:100;not null" json:"name"`
	// Email of the sender, trimmed and lowercased.
	Email string `gorm:"size:255;not null;index" json:"email"`
	// Message body, trimmed.
	Message string `gorm:"type:text;not null" json:"message"`
	// CreatedAt is set by GORM at insert time.
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// TableName pins the table name independent of the naming strategy.
func (Contact) TableName() string {
	return "contacts"
}

// BeforeCreate assigns the record id.
func (c *Contact) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	return nil
}
