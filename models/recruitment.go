package models

import (
	"time"

	"gorm.io/gorm"
)

// RecruitmentStatus is the recruitment posting state. OPEN is the initial
// state; END is terminal and the only legal transition is OPEN -> END.
type RecruitmentStatus string

const (
	RecruitmentOpen RecruitmentStatus = "OPEN"
	RecruitmentEnd  RecruitmentStatus = "END"
)

// Recruitment is a group-travel recruitment posting. The owning member is
// fixed at creation; only the owner may mutate it, and only while OPEN.
type Recruitment struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	MemberID        uint              `gorm:"index;not null" json:"member_id"`
	Title           string            `gorm:"size:255;not null" json:"title"`
	Content         string            `gorm:"type:text;not null" json:"content"`
	TravelNation    string            `gorm:"size:64" json:"travel_nation"`
	TravelStartDate time.Time         `json:"travel_start_date"`
	TravelEndDate   time.Time         `json:"travel_end_date"`
	Status          RecruitmentStatus `gorm:"size:8;not null;default:'OPEN'" json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`
	Member          Member            `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"writer"`
}
