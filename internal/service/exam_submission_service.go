package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lshigami/Quizling/internal/dto"
	"github.com/lshigami/Quizling/internal/grader"
	"github.com/lshigami/Quizling/internal/model"
	"github.com/lshigami/Quizling/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ExamSubmissionService owns the ongoing→submitted lifecycle: draft saves
// while ongoing, one grading pass at submission, nothing afterwards.
type ExamSubmissionService interface {
	Submit(examID, callerID uint, answers []dto.ExamAnswerDTO) (*dto.ExamResultDTO, error)
	SaveDraft(examID, callerID uint, answers []dto.ExamAnswerDTO) error
}

type examSubmissionService struct {
	examRepo repository.ExamRepository
	judger   *grader.Judger
}

func NewExamSubmissionService(examRepo repository.ExamRepository) ExamSubmissionService {
	return &examSubmissionService{
		examRepo: examRepo,
		judger:   grader.NewJudger(),
	}
}

// Submit grades every snapshot of the exam against the submitted answers
// (missing answers grade as empty strings) and persists answers, verdicts and
// the status flip as one atomic unit. A second submit fails with
// ErrAlreadySubmitted and performs no writes.
func (s *examSubmissionService) Submit(examID, callerID uint, answers []dto.ExamAnswerDTO) (*dto.ExamResultDTO, error) {
	exam, err := s.loadOwned(examID, callerID)
	if err != nil {
		return nil, err
	}
	if exam.Status == model.ExamStatusSubmitted {
		return nil, ErrAlreadySubmitted
	}

	submitted := answerLookup(answers)
	now := time.Now()
	snapshots := exam.Snapshots
	for i := range snapshots {
		snap := &snapshots[i]
		raw := submitted[snap.QuestionID] // absent answers grade as ""
		correct := s.judger.Correct(snap.Question.Type, raw, snap.Question.Answer)
		snap.UserAnswer = raw
		snap.Correct = &correct
		snap.AnsweredAt = &now
	}

	summary := grader.Aggregate(snapshots)
	exam.TotalScore = summary.TotalScore
	exam.SubmittedAt = &now

	if err := s.examRepo.SubmitGraded(exam, snapshots); err != nil {
		if errors.Is(err, repository.ErrNoOngoingExam) {
			// Lost the race to a concurrent submit; nothing was written.
			return nil, ErrAlreadySubmitted
		}
		log.Error().Err(err).Uint("examID", examID).Msg("Submit: failed to persist graded exam")
		return nil, fmt.Errorf("database error submitting exam %d: %w", examID, err)
	}

	log.Info().
		Uint("examID", examID).
		Int("total", summary.TotalCount).
		Int("correct", summary.CorrectCount).
		Float64("score", summary.TotalScore).
		Msg("Exam submitted and graded")

	return &dto.ExamResultDTO{
		TotalCount:   summary.TotalCount,
		CorrectCount: summary.CorrectCount,
		TotalScore:   summary.TotalScore,
	}, nil
}

// SaveDraft stores partial answers for an ongoing exam. Only the user_answer
// of matched snapshots changes; unmatched question ids are ignored and the
// last write for a question wins.
func (s *examSubmissionService) SaveDraft(examID, callerID uint, answers []dto.ExamAnswerDTO) error {
	exam, err := s.loadOwned(examID, callerID)
	if err != nil {
		return err
	}
	if exam.Status == model.ExamStatusSubmitted {
		return ErrAlreadySubmitted
	}

	owned := make(map[uint]bool, len(exam.Snapshots))
	for _, snap := range exam.Snapshots {
		owned[snap.QuestionID] = true
	}

	updates := make(map[uint]string)
	for questionID, raw := range answerLookup(answers) {
		if owned[questionID] {
			updates[questionID] = raw
		}
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.examRepo.UpdateUserAnswers(examID, updates); err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("SaveDraft: failed to persist draft answers")
		return fmt.Errorf("database error saving draft for exam %d: %w", examID, err)
	}
	return nil
}

func (s *examSubmissionService) loadOwned(examID, callerID uint) (*model.Exam, error) {
	exam, err := s.examRepo.FindByIDWithSnapshots(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("error loading exam %d: %w", examID, err)
	}
	if exam.UserID != callerID {
		return nil, ErrNotOwner
	}
	return exam, nil
}

// answerLookup indexes raw answers by question id. Entries whose id does not
// parse as a question reference are dropped, not an error; a duplicated id
// keeps its last value.
func answerLookup(answers []dto.ExamAnswerDTO) map[uint]string {
	lookup := make(map[uint]string, len(answers))
	for _, a := range answers {
		id, err := strconv.ParseUint(a.QuestionID, 10, 32)
		if err != nil {
			log.Warn().Str("questionID", a.QuestionID).Msg("Dropping answer with unparseable question id")
			continue
		}
		lookup[uint(id)] = a.UserAnswer
	}
	return lookup
}
