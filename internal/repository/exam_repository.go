package repository

import (
	"errors"
	"time"

	"github.com/lshigami/Quizling/internal/model"
	"gorm.io/gorm"
)

// ErrNoOngoingExam is returned by SubmitGraded when the conditional status
// transition matched no row, i.e. the exam was already submitted by the time
// the transaction ran.
var ErrNoOngoingExam = errors.New("exam is not in ongoing status")

type ExamRepository interface {
	// Create persists the exam header together with all its snapshots in
	// one transaction; snapshots are never inserted after this point.
	Create(exam *model.Exam) error
	FindByID(id uint) (*model.Exam, error)
	FindByIDWithSnapshots(id uint) (*model.Exam, error)
	// UpdateUserAnswers writes draft answers. Only the user_answer column of
	// the exam's own snapshots is touched, matched by question id.
	UpdateUserAnswers(examID uint, answers map[uint]string) error
	// SubmitGraded applies the graded state atomically: the ongoing→submitted
	// transition is a conditional update and guards the whole transaction, so
	// two racing submits cannot both grade.
	SubmitGraded(exam *model.Exam, snapshots []model.ExamQuestion) error
	Delete(id uint) error
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(exam *model.Exam) error {
	// GORM inserts the associated snapshots with the exam row.
	return r.db.Create(exam).Error
}

func (r *examRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindByIDWithSnapshots(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.
		Preload("Snapshots", func(db *gorm.DB) *gorm.DB {
			return db.Order("exam_questions.order_index ASC")
		}).
		Preload("Snapshots.Question").
		First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) UpdateUserAnswers(examID uint, answers map[uint]string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for questionID, answer := range answers {
			err := tx.Model(&model.ExamQuestion{}).
				Where("exam_id = ? AND question_id = ?", examID, questionID).
				Update("user_answer", answer).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *examRepository) SubmitGraded(exam *model.Exam, snapshots []model.ExamQuestion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Exam{}).
			Where("id = ? AND status = ?", exam.ID, model.ExamStatusOngoing).
			Updates(map[string]interface{}{
				"status":       model.ExamStatusSubmitted,
				"total_score":  exam.TotalScore,
				"submitted_at": exam.SubmittedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoOngoingExam
		}
		now := time.Now()
		for i := range snapshots {
			s := &snapshots[i]
			answeredAt := s.AnsweredAt
			if answeredAt == nil {
				answeredAt = &now
			}
			err := tx.Model(&model.ExamQuestion{}).
				Where("id = ?", s.ID).
				Updates(map[string]interface{}{
					"user_answer": s.UserAnswer,
					"correct":     s.Correct,
					"answered_at": answeredAt,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *examRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", id).Delete(&model.ExamQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Exam{}, id).Error
	})
}
