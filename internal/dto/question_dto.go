package dto

import "time"

// QuestionCreateDTO is for the admin question-bank endpoints.
type QuestionCreateDTO struct {
	Type      string `json:"type" binding:"required"`
	SubjectID uint   `json:"subject_id"`
	Content   string `json:"content" binding:"required"`
	Options   string `json:"options"`
	Answer    string `json:"answer" binding:"required"`
	Analysis  string `json:"analysis"`
}

// QuestionUpdateDTO updates an existing question in place. Empty fields are
// written as-is; this is a full replacement, not a patch.
type QuestionUpdateDTO struct {
	Type      string `json:"type" binding:"required"`
	SubjectID uint   `json:"subject_id"`
	Content   string `json:"content" binding:"required"`
	Options   string `json:"options"`
	Answer    string `json:"answer" binding:"required"`
	Analysis  string `json:"analysis"`
}

type QuestionResponseDTO struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	SubjectID uint      `json:"subject_id"`
	Content   string    `json:"content"`
	Options   string    `json:"options,omitempty"`
	Answer    string    `json:"answer"`
	Analysis  string    `json:"analysis,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
