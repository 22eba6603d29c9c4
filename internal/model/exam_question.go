package model

import (
	"time"

	"gorm.io/gorm"
)

// ExamQuestion is one question's fixed position and weight within one exam.
// QuestionID is a weak reference: question content is never copied, so a
// source question edited or deleted after composition leaves the snapshot
// pointing at stale or missing content.
type ExamQuestion struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	ExamID     uint           `json:"exam_id" gorm:"not null;index"`
	QuestionID uint           `json:"question_id" gorm:"not null;index"`
	Question   Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	OrderIndex int            `json:"order_index" gorm:"not null"` // 0..N-1, contiguous per exam
	Score      float64        `json:"score" gorm:"not null"`
	UserAnswer string         `json:"user_answer" gorm:"type:text"`
	Correct    *bool          `json:"correct,omitempty"` // nil until submission
	AnsweredAt *time.Time     `json:"answered_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
