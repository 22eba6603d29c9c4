package grader

import "github.com/lshigami/Quizling/internal/model"

// Summary is the graded outcome of one exam: raw weighted sum, never
// normalized to a percentage scale.
type Summary struct {
	TotalCount   int
	CorrectCount int
	TotalScore   float64
}

// Aggregate reduces a graded snapshot set to totals. Snapshots with an unset
// or false verdict contribute nothing to the score.
func Aggregate(snapshots []model.ExamQuestion) Summary {
	sum := Summary{TotalCount: len(snapshots)}
	for _, s := range snapshots {
		if s.Correct != nil && *s.Correct {
			sum.CorrectCount++
			sum.TotalScore += s.Score
		}
	}
	return sum
}
