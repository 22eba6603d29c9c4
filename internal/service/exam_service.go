package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/lshigami/Quizling/internal/dto"
	"github.com/lshigami/Quizling/internal/model"
	"github.com/lshigami/Quizling/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Input repair bounds for Compose. Out-of-range values are clamped, absent
// ones defaulted; composition never rejects a request over its numbers.
const (
	MaxDurationMinutes     = 1440
	DefaultDurationMinutes = 60
	MaxQuestionsPerType    = 500
	MaxScorePerQuestion    = 1000.0
	DefaultScore           = 1.0
)

type ExamService interface {
	Compose(req dto.ExamComposeDTO) (uint, error)
	GetExam(examID, viewerID uint, isAdmin bool) (*dto.ExamDetailDTO, error)
	DeleteExam(examID, callerID uint) error
}

type examService struct {
	examRepo     repository.ExamRepository
	questionRepo repository.QuestionRepository
	rng          *rand.Rand
	rngMu        sync.Mutex
}

// NewExamService builds the composer. The random source is injected so tests
// can seed it; production wiring seeds from the clock.
func NewExamService(examRepo repository.ExamRepository, questionRepo repository.QuestionRepository, rng *rand.Rand) ExamService {
	return &examService{examRepo: examRepo, questionRepo: questionRepo, rng: rng}
}

// Compose samples the question bank per requested (type, count, score) item
// and persists the exam with its full snapshot set in one transaction.
// Between-type order follows the request item order; within-type order is an
// unspecified random draw. Undersized pools contribute what they have.
func (s *examService) Compose(req dto.ExamComposeDTO) (uint, error) {
	duration := req.DurationMinutes
	switch {
	case duration <= 0:
		duration = DefaultDurationMinutes
	case duration > MaxDurationMinutes:
		duration = MaxDurationMinutes
	}

	configJSON, err := json.Marshal(req)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize compose config: %w", err)
	}

	var snapshots []model.ExamQuestion
	orderIndex := 0
	for _, item := range req.Items {
		count := item.Count
		if count < 0 {
			count = 0
		}
		if count > MaxQuestionsPerType {
			count = MaxQuestionsPerType
		}
		if count == 0 {
			continue
		}

		score := DefaultScore
		if item.Score != nil {
			score = *item.Score
			if score < 0 {
				score = 0
			}
			if score > MaxScorePerQuestion {
				score = MaxScorePerQuestion
			}
		}

		pool, err := s.questionRepo.FindByTypeAndSubject(item.Type, req.SubjectID)
		if err != nil {
			log.Error().Err(err).Str("type", item.Type).Uint("subjectID", req.SubjectID).Msg("Compose: question pool query failed")
			return 0, fmt.Errorf("error querying question pool for type %s: %w", item.Type, err)
		}
		if len(pool) == 0 {
			// Silent under-fill: an empty pool contributes nothing and
			// does not abort the remaining types.
			log.Warn().Str("type", item.Type).Uint("subjectID", req.SubjectID).Msg("Compose: empty question pool for requested type")
			continue
		}

		drawn := s.draw(pool, count)
		for _, q := range drawn {
			snapshots = append(snapshots, model.ExamQuestion{
				QuestionID: q.ID,
				OrderIndex: orderIndex,
				Score:      score,
			})
			orderIndex++
		}
	}

	exam := model.Exam{
		UserID:          req.UserID,
		SubjectID:       req.SubjectID,
		DurationMinutes: duration,
		Config:          string(configJSON),
		Status:          model.ExamStatusOngoing,
		StartedAt:       time.Now(),
		Snapshots:       snapshots,
	}
	if err := s.examRepo.Create(&exam); err != nil {
		log.Error().Err(err).Uint("userID", req.UserID).Msg("Compose: failed to persist exam")
		return 0, fmt.Errorf("database error creating exam: %w", err)
	}

	log.Info().Uint("examID", exam.ID).Uint("userID", req.UserID).Int("snapshots", len(snapshots)).Msg("Exam composed")
	return exam.ID, nil
}

// draw picks min(count, len(pool)) questions uniformly without replacement.
func (s *examService) draw(pool []model.Question, count int) []model.Question {
	shuffled := make([]model.Question, len(pool))
	copy(shuffled, pool)

	s.rngMu.Lock()
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	s.rngMu.Unlock()

	if count < len(shuffled) {
		shuffled = shuffled[:count]
	}
	return shuffled
}

// GetExam returns the exam with its ordered snapshots. Only the owner may
// read it unless the viewer holds the administrative read-only bypass.
func (s *examService) GetExam(examID, viewerID uint, isAdmin bool) (*dto.ExamDetailDTO, error) {
	exam, err := s.examRepo.FindByIDWithSnapshots(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("error loading exam %d: %w", examID, err)
	}
	if exam.UserID != viewerID && !isAdmin {
		return nil, ErrNotOwner
	}
	return buildExamDetail(exam), nil
}

func (s *examService) DeleteExam(examID, callerID uint) error {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExamNotFound
		}
		return fmt.Errorf("error loading exam %d: %w", examID, err)
	}
	if exam.UserID != callerID {
		return ErrNotOwner
	}
	if err := s.examRepo.Delete(examID); err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("DeleteExam: failed to delete exam")
		return fmt.Errorf("database error deleting exam %d: %w", examID, err)
	}
	return nil
}

// buildExamDetail maps an exam and its snapshots to the response DTO. The
// answer key and analysis are withheld while the exam is still ongoing. A
// snapshot whose source question has been deleted keeps its position with
// empty content; weak references are not insulated from bank edits.
func buildExamDetail(exam *model.Exam) *dto.ExamDetailDTO {
	detail := dto.ExamDetailDTO{
		ID:              exam.ID,
		UserID:          exam.UserID,
		SubjectID:       exam.SubjectID,
		DurationMinutes: exam.DurationMinutes,
		TotalScore:      exam.TotalScore,
		Status:          exam.Status,
		StartedAt:       exam.StartedAt,
		SubmittedAt:     exam.SubmittedAt,
		Questions:       make([]dto.ExamQuestionDTO, 0, len(exam.Snapshots)),
	}
	submitted := exam.Status == model.ExamStatusSubmitted
	for _, snap := range exam.Snapshots {
		q := dto.ExamQuestionDTO{
			ID:         snap.ID,
			QuestionID: snap.QuestionID,
			OrderIndex: snap.OrderIndex,
			Score:      snap.Score,
			UserAnswer: snap.UserAnswer,
			Type:       snap.Question.Type,
			Content:    snap.Question.Content,
			Options:    snap.Question.Options,
		}
		if submitted {
			q.Correct = snap.Correct
			q.AnsweredAt = snap.AnsweredAt
			q.Answer = snap.Question.Answer
			q.Analysis = snap.Question.Analysis
		}
		detail.Questions = append(detail.Questions, q)
	}
	return &detail
}
