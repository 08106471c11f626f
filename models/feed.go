package models

import (
	"time"

	"gorm.io/gorm"
)

// Feed represents a travel feed post written by a member.
// The primary key doubles as the pagination cursor, so it must stay
// auto-incremented and immutable after creation.
type Feed struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	MemberID  uint           `gorm:"index;not null" json:"member_id"`
	Contents  string         `gorm:"type:text;not null" json:"contents"`
	Location  string         `gorm:"size:255" json:"location"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Member    Member         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Tags      []Tag          `gorm:"many2many:feed_tags;" json:"tags"`
}

// Tag labels feed posts. Names are unique and matched exactly (case-sensitive)
// by the tag filter; tags are created lazily when a post first uses them.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:64;not null;uniqueIndex" json:"name"`
}
