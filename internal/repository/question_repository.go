package repository

import (
	"github.com/lshigami/Quizling/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindAll(qType string, subjectID uint) ([]model.Question, error)
	// FindByTypeAndSubject is the composer's pool query. A subjectID of
	// model.SubjectUnscoped drops the subject filter.
	FindByTypeAndSubject(qType string, subjectID uint) ([]model.Question, error)
	Update(question *model.Question) error
	Delete(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindAll(qType string, subjectID uint) ([]model.Question, error) {
	query := r.db.Order("created_at desc")
	if qType != "" {
		query = query.Where("type = ?", qType)
	}
	if subjectID != model.SubjectUnscoped {
		query = query.Where("subject_id = ?", subjectID)
	}
	var questions []model.Question
	if err := query.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByTypeAndSubject(qType string, subjectID uint) ([]model.Question, error) {
	query := r.db.Where("type = ?", qType)
	if subjectID != model.SubjectUnscoped {
		query = query.Where("subject_id = ?", subjectID)
	}
	var questions []model.Question
	if err := query.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Question{}, id).Error
}
