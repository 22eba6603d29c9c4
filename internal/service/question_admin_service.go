package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Quizling/internal/dto"
	"github.com/lshigami/Quizling/internal/model"
	"github.com/lshigami/Quizling/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuestionAdminService is the question-bank CRUD surface the composer
// samples from.
type QuestionAdminService interface {
	CreateQuestion(req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	GetQuestion(id uint) (*dto.QuestionResponseDTO, error)
	ListQuestions(qType string, subjectID uint) ([]dto.QuestionResponseDTO, error)
	UpdateQuestion(id uint, req dto.QuestionUpdateDTO) (*dto.QuestionResponseDTO, error)
	DeleteQuestion(id uint) error
}

type questionAdminService struct {
	questionRepo repository.QuestionRepository
}

func NewQuestionAdminService(questionRepo repository.QuestionRepository) QuestionAdminService {
	return &questionAdminService{questionRepo: questionRepo}
}

func (s *questionAdminService) CreateQuestion(req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	var question model.Question
	copier.Copy(&question, &req)

	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Msg("CreateQuestion: failed to create question")
		return nil, fmt.Errorf("database error creating question: %w", err)
	}
	return questionToDTO(&question), nil
}

func (s *questionAdminService) GetQuestion(id uint) (*dto.QuestionResponseDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error loading question %d: %w", id, err)
	}
	return questionToDTO(question), nil
}

func (s *questionAdminService) ListQuestions(qType string, subjectID uint) ([]dto.QuestionResponseDTO, error) {
	questions, err := s.questionRepo.FindAll(qType, subjectID)
	if err != nil {
		log.Error().Err(err).Msg("ListQuestions: repository error")
		return nil, fmt.Errorf("error listing questions: %w", err)
	}
	dtos := make([]dto.QuestionResponseDTO, 0, len(questions))
	for i := range questions {
		dtos = append(dtos, *questionToDTO(&questions[i]))
	}
	return dtos, nil
}

func (s *questionAdminService) UpdateQuestion(id uint, req dto.QuestionUpdateDTO) (*dto.QuestionResponseDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error loading question %d: %w", id, err)
	}

	question.Type = req.Type
	question.SubjectID = req.SubjectID
	question.Content = req.Content
	question.Options = req.Options
	question.Answer = req.Answer
	question.Analysis = req.Analysis

	if err := s.questionRepo.Update(question); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("UpdateQuestion: failed to update question")
		return nil, fmt.Errorf("database error updating question %d: %w", id, err)
	}
	return questionToDTO(question), nil
}

func (s *questionAdminService) DeleteQuestion(id uint) error {
	if _, err := s.questionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("error loading question %d: %w", id, err)
	}
	if err := s.questionRepo.Delete(id); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("DeleteQuestion: failed to delete question")
		return fmt.Errorf("database error deleting question %d: %w", id, err)
	}
	return nil
}

func questionToDTO(q *model.Question) *dto.QuestionResponseDTO {
	var resp dto.QuestionResponseDTO
	if err := copier.Copy(&resp, q); err != nil {
		log.Error().Err(err).Msg("Failed to copy question model to DTO")
	}
	return &resp
}
