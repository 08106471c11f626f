package models

import (
	"time"

	"gorm.io/gorm"
)

// Member represents a registered account. Passwords are stored as bcrypt hashes only.
type Member struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Nickname     string         `gorm:"size:64;not null;uniqueIndex" json:"nickname"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Nation       string         `gorm:"size:64" json:"nation"`
	Introduction string         `gorm:"size:255" json:"introduction"`
	ImageURL     string         `gorm:"size:512" json:"image_url"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Feeds        []Feed         `json:"-"`
	Recruitments []Recruitment  `json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (m *Member) BeforeUpdate(tx *gorm.DB) error {
	m.UpdatedAt = time.Now()
	return nil
}
