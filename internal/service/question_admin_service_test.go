package service

import (
	"testing"

	"github.com/lshigami/Quizling/internal/dto"
	"github.com/lshigami/Quizling/internal/model"
)

func TestQuestionAdmin_CRUD(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := NewQuestionAdminService(repo)

	created, err := svc.CreateQuestion(dto.QuestionCreateDTO{
		Type:      model.QuestionTypeFillBlank,
		SubjectID: 2,
		Content:   "中国的首都是____。",
		Answer:    "北京;北平",
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("created question has no id")
	}

	got, err := svc.GetQuestion(created.ID)
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if got.Answer != "北京;北平" || got.Type != model.QuestionTypeFillBlank {
		t.Errorf("GetQuestion = %+v", got)
	}

	updated, err := svc.UpdateQuestion(created.ID, dto.QuestionUpdateDTO{
		Type:      model.QuestionTypeFillBlank,
		SubjectID: 2,
		Content:   "中国的首都是____。",
		Answer:    "北京",
	})
	if err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}
	if updated.Answer != "北京" {
		t.Errorf("answer not updated: %q", updated.Answer)
	}

	list, err := svc.ListQuestions(model.QuestionTypeFillBlank, 2)
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 question, got %d", len(list))
	}

	if err := svc.DeleteQuestion(created.ID); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	if _, err := svc.GetQuestion(created.ID); err != ErrQuestionNotFound {
		t.Errorf("after delete: got %v, want ErrQuestionNotFound", err)
	}
	if err := svc.DeleteQuestion(created.ID); err != ErrQuestionNotFound {
		t.Errorf("double delete: got %v, want ErrQuestionNotFound", err)
	}
}
