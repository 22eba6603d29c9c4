package model

import (
	"time"

	"gorm.io/gorm"
)

// Question types recognized by the grading engine. Any other type value is
// graded as free response.
const (
	QuestionTypeSingleChoice = "选择题"
	QuestionTypeMultiChoice  = "多选题"
	QuestionTypeTrueFalse    = "判断题"
	QuestionTypeFillBlank    = "填空题"
	QuestionTypeShortAnswer  = "简答题"
)

// SubjectUnscoped is the subject id sentinel meaning "no subject restriction".
const SubjectUnscoped uint = 0

type Question struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Type      string         `json:"type" gorm:"not null;index"`
	SubjectID uint           `json:"subject_id" gorm:"index"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	Options   string         `json:"options,omitempty" gorm:"type:text"`
	Answer    string         `json:"answer" gorm:"type:text;not null"`
	Analysis  string         `json:"analysis,omitempty" gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
