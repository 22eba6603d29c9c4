package service

import (
	"sort"

	"github.com/lshigami/Quizling/internal/model"
	"github.com/lshigami/Quizling/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes. They return deep copies on reads so service
// code cannot mutate stored state without going through a write method, which
// mirrors how the gorm-backed repositories behave.

type fakeQuestionRepo struct {
	questions []model.Question
	nextID    uint
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{nextID: 1}
}

func (r *fakeQuestionRepo) Create(q *model.Question) error {
	q.ID = r.nextID
	r.nextID++
	r.questions = append(r.questions, *q)
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	for i := range r.questions {
		if r.questions[i].ID == id {
			q := r.questions[i]
			return &q, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeQuestionRepo) FindAll(qType string, subjectID uint) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.questions {
		if qType != "" && q.Type != qType {
			continue
		}
		if subjectID != model.SubjectUnscoped && q.SubjectID != subjectID {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (r *fakeQuestionRepo) FindByTypeAndSubject(qType string, subjectID uint) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.questions {
		if q.Type != qType {
			continue
		}
		if subjectID != model.SubjectUnscoped && q.SubjectID != subjectID {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (r *fakeQuestionRepo) Update(q *model.Question) error {
	for i := range r.questions {
		if r.questions[i].ID == q.ID {
			r.questions[i] = *q
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeQuestionRepo) Delete(id uint) error {
	for i := range r.questions {
		if r.questions[i].ID == id {
			r.questions = append(r.questions[:i], r.questions[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeExamRepo struct {
	exams        map[uint]*model.Exam
	questionRepo *fakeQuestionRepo
	nextExamID   uint
	nextSnapID   uint
}

func newFakeExamRepo(qr *fakeQuestionRepo) *fakeExamRepo {
	return &fakeExamRepo{
		exams:        make(map[uint]*model.Exam),
		questionRepo: qr,
		nextExamID:   1,
		nextSnapID:   1,
	}
}

func (r *fakeExamRepo) Create(exam *model.Exam) error {
	exam.ID = r.nextExamID
	r.nextExamID++
	for i := range exam.Snapshots {
		exam.Snapshots[i].ID = r.nextSnapID
		exam.Snapshots[i].ExamID = exam.ID
		r.nextSnapID++
	}
	stored := copyExam(exam)
	r.exams[exam.ID] = &stored
	return nil
}

func (r *fakeExamRepo) FindByID(id uint) (*model.Exam, error) {
	stored, ok := r.exams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	exam := copyExam(stored)
	exam.Snapshots = nil
	return &exam, nil
}

func (r *fakeExamRepo) FindByIDWithSnapshots(id uint) (*model.Exam, error) {
	stored, ok := r.exams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	exam := copyExam(stored)
	sort.Slice(exam.Snapshots, func(i, j int) bool {
		return exam.Snapshots[i].OrderIndex < exam.Snapshots[j].OrderIndex
	})
	for i := range exam.Snapshots {
		if q, err := r.questionRepo.FindByID(exam.Snapshots[i].QuestionID); err == nil {
			exam.Snapshots[i].Question = *q
		}
	}
	return &exam, nil
}

func (r *fakeExamRepo) UpdateUserAnswers(examID uint, answers map[uint]string) error {
	stored, ok := r.exams[examID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range stored.Snapshots {
		if answer, ok := answers[stored.Snapshots[i].QuestionID]; ok {
			stored.Snapshots[i].UserAnswer = answer
		}
	}
	return nil
}

func (r *fakeExamRepo) SubmitGraded(exam *model.Exam, snapshots []model.ExamQuestion) error {
	stored, ok := r.exams[exam.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Status != model.ExamStatusOngoing {
		return repository.ErrNoOngoingExam
	}
	stored.Status = model.ExamStatusSubmitted
	stored.TotalScore = exam.TotalScore
	stored.SubmittedAt = exam.SubmittedAt
	for _, snap := range snapshots {
		for i := range stored.Snapshots {
			if stored.Snapshots[i].ID == snap.ID {
				stored.Snapshots[i].UserAnswer = snap.UserAnswer
				stored.Snapshots[i].Correct = snap.Correct
				stored.Snapshots[i].AnsweredAt = snap.AnsweredAt
			}
		}
	}
	return nil
}

func (r *fakeExamRepo) Delete(id uint) error {
	if _, ok := r.exams[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.exams, id)
	return nil
}

func copyExam(exam *model.Exam) model.Exam {
	out := *exam
	out.Snapshots = make([]model.ExamQuestion, len(exam.Snapshots))
	copy(out.Snapshots, exam.Snapshots)
	return out
}
