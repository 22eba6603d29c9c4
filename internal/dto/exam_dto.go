package dto

import "time"

// ExamComposeItemDTO is one (type, count, score) request entry. The slice
// order in ExamComposeDTO defines the between-type order of the composed
// exam, so this is deliberately a sequence and never a map. Score is a
// pointer so an absent weight can default to 1.0 while an explicit 0 stays 0.
type ExamComposeItemDTO struct {
	Type  string   `json:"type" binding:"required"`
	Count int      `json:"count"`
	Score *float64 `json:"score"`
}

// ExamComposeDTO is the request to compose a new exam. Malformed numeric
// fields are repaired (clamped or defaulted), never rejected.
type ExamComposeDTO struct {
	UserID          uint                 `json:"user_id" binding:"required"`
	SubjectID       uint                 `json:"subject_id"` // 0 = unscoped
	DurationMinutes int                  `json:"duration_minutes"`
	Items           []ExamComposeItemDTO `json:"items" binding:"required,dive"`
}

// ExamAnswerDTO carries one raw answer keyed by question id. The id is a
// string on the wire; entries that do not parse as a question reference are
// silently dropped.
type ExamAnswerDTO struct {
	QuestionID string `json:"question_id" binding:"required"`
	UserAnswer string `json:"user_answer"`
}

// ExamSubmitDTO is the request body for both draft saves and submission.
type ExamSubmitDTO struct {
	UserID  uint            `json:"user_id" binding:"required"`
	Answers []ExamAnswerDTO `json:"answers" binding:"dive"`
}

// ExamResultDTO is the graded outcome returned by submission.
type ExamResultDTO struct {
	TotalCount   int     `json:"total_count"`
	CorrectCount int     `json:"correct_count"`
	TotalScore   float64 `json:"total_score"`
}

// ExamQuestionDTO is one snapshot as shown to the exam taker. The answer key
// is only included once the exam has been submitted.
type ExamQuestionDTO struct {
	ID         uint       `json:"id"`
	QuestionID uint       `json:"question_id"`
	OrderIndex int        `json:"order_index"`
	Score      float64    `json:"score"`
	UserAnswer string     `json:"user_answer,omitempty"`
	Correct    *bool      `json:"correct,omitempty"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`
	Type       string     `json:"type,omitempty"`
	Content    string     `json:"content,omitempty"`
	Options    string     `json:"options,omitempty"`
	Answer     string     `json:"answer,omitempty"`
	Analysis   string     `json:"analysis,omitempty"`
}

// ExamDetailDTO is the full exam view, snapshots in order-index order.
type ExamDetailDTO struct {
	ID              uint              `json:"id"`
	UserID          uint              `json:"user_id"`
	SubjectID       uint              `json:"subject_id"`
	DurationMinutes int               `json:"duration_minutes"`
	TotalScore      float64           `json:"total_score"`
	Status          string            `json:"status"`
	StartedAt       time.Time         `json:"started_at"`
	SubmittedAt     *time.Time        `json:"submitted_at,omitempty"`
	Questions       []ExamQuestionDTO `json:"questions"`
}
