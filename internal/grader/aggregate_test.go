package grader

import (
	"testing"

	"github.com/lshigami/Quizling/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func TestAggregate(t *testing.T) {
	snapshots := []model.ExamQuestion{
		{Score: 2.0, Correct: boolPtr(true)},
		{Score: 2.0, Correct: boolPtr(false)},
		{Score: 3.5, Correct: boolPtr(true)},
		{Score: 4.0, Correct: nil}, // unset verdict contributes nothing
	}

	sum := Aggregate(snapshots)
	if sum.TotalCount != 4 {
		t.Errorf("TotalCount = %d, want 4", sum.TotalCount)
	}
	if sum.CorrectCount != 2 {
		t.Errorf("CorrectCount = %d, want 2", sum.CorrectCount)
	}
	if sum.TotalScore != 5.5 {
		t.Errorf("TotalScore = %v, want 5.5", sum.TotalScore)
	}
}

func TestAggregate_Empty(t *testing.T) {
	sum := Aggregate(nil)
	if sum.TotalCount != 0 || sum.CorrectCount != 0 || sum.TotalScore != 0 {
		t.Errorf("Aggregate(nil) = %+v, want zero summary", sum)
	}
}
