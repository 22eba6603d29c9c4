package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	ExamStatusOngoing   = "ongoing"
	ExamStatusSubmitted = "submitted"
)

// Exam is an owner-scoped bundle of question snapshots. Config keeps the
// composition request verbatim for audit; it is never re-derived.
type Exam struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UserID          uint           `json:"user_id" gorm:"not null;index"`
	SubjectID       uint           `json:"subject_id" gorm:"index"` // 0 = unscoped
	DurationMinutes int            `json:"duration_minutes" gorm:"not null"`
	Config          string         `json:"config,omitempty" gorm:"type:text"`
	TotalScore      float64        `json:"total_score"`
	Status          string         `json:"status" gorm:"not null;default:'ongoing';index"`
	StartedAt       time.Time      `json:"started_at"`
	SubmittedAt     *time.Time     `json:"submitted_at,omitempty"`
	Snapshots       []ExamQuestion `json:"snapshots,omitempty" gorm:"foreignKey:ExamID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
