package grader

import (
	"testing"

	"github.com/lshigami/Quizling/internal/model"
)

func TestJudger_SingleChoice(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		key       string
		want      bool
	}{
		{name: "exact match", submitted: "B", key: "B", want: true},
		{name: "wrong letter", submitted: "A", key: "B", want: false},
		{name: "trimmed match", submitted: " B ", key: "B", want: true},
		{name: "empty never matches", submitted: "", key: "B", want: false},
		{name: "whitespace only never matches", submitted: "   ", key: "B", want: false},
		{name: "case sensitive", submitted: "b", key: "B", want: false},
	}

	j := NewJudger()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := j.Correct(model.QuestionTypeSingleChoice, tc.submitted, tc.key)
			if got != tc.want {
				t.Errorf("Correct(%q, %q) = %v, want %v", tc.submitted, tc.key, got, tc.want)
			}
		})
	}
}

func TestJudger_MultiChoice(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		key       string
		want      bool
	}{
		{name: "same order", submitted: "AB", key: "AB", want: true},
		{name: "reversed order", submitted: "BA", key: "AB", want: true},
		{name: "missing letter", submitted: "AB", key: "ABC", want: false},
		{name: "extra letter", submitted: "ABC", key: "AB", want: false},
		{name: "empty never matches", submitted: "", key: "AB", want: false},
		{name: "shuffled triple", submitted: "CAB", key: "ABC", want: true},
	}

	j := NewJudger()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := j.Correct(model.QuestionTypeMultiChoice, tc.submitted, tc.key)
			if got != tc.want {
				t.Errorf("Correct(%q, %q) = %v, want %v", tc.submitted, tc.key, got, tc.want)
			}
		})
	}
}

func TestJudger_TrueFalse(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		key       string
		want      bool
	}{
		{name: "matching token", submitted: "正确", key: "正确", want: true},
		{name: "wrong token", submitted: "错误", key: "正确", want: false},
		{name: "no boolean coercion", submitted: "true", key: "正确", want: false},
		{name: "empty never matches", submitted: "", key: "错误", want: false},
	}

	j := NewJudger()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := j.Correct(model.QuestionTypeTrueFalse, tc.submitted, tc.key)
			if got != tc.want {
				t.Errorf("Correct(%q, %q) = %v, want %v", tc.submitted, tc.key, got, tc.want)
			}
		})
	}
}

func TestJudger_FillBlank(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		key       string
		want      bool
	}{
		{name: "first variant", submitted: "北京", key: "北京;北平", want: true},
		{name: "second variant", submitted: "北平", key: "北京;北平", want: true},
		{name: "literal variant list is not a variant", submitted: "北京;北平", key: "北京;北平", want: false},
		{name: "two blanks both correct", submitted: `["北京","上海"]`, key: "北京;北平;;上海;沪", want: true},
		{name: "two blanks alternate variants", submitted: `["北平","沪"]`, key: "北京;北平;;上海;沪", want: true},
		{name: "two blanks one wrong", submitted: `["北京","广州"]`, key: "北京;北平;;上海;沪", want: false},
		{name: "blank count mismatch fails whole question", submitted: `["北京"]`, key: "北京;北平;;上海;沪", want: false},
		{name: "bare string answers first blank only", submitted: "北京", key: "北京;北平;;上海;沪", want: false},
		{name: "single blank json array", submitted: `["北平"]`, key: "北京;北平", want: true},
		{name: "entries trimmed before comparison", submitted: `[" 北京 "]`, key: "北京;北平", want: true},
		{name: "no declared variants uses whole substring", submitted: "长江", key: "长江", want: true},
		{name: "unanswered blank fails", submitted: `["北京",""]`, key: "北京;;上海", want: false},
		{name: "empty submission fails", submitted: "", key: "北京;北平", want: false},
	}

	j := NewJudger()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := j.Correct(model.QuestionTypeFillBlank, tc.submitted, tc.key)
			if got != tc.want {
				t.Errorf("Correct(%q, %q) = %v, want %v", tc.submitted, tc.key, got, tc.want)
			}
		})
	}
}

func TestJudger_FreeResponse(t *testing.T) {
	tests := []struct {
		name      string
		qType     string
		submitted string
		want      bool
	}{
		{name: "non-empty is correct", qType: model.QuestionTypeShortAnswer, submitted: "x", want: true},
		{name: "empty is incorrect", qType: model.QuestionTypeShortAnswer, submitted: "", want: false},
		{name: "whitespace only is incorrect", qType: model.QuestionTypeShortAnswer, submitted: "   ", want: false},
		{name: "unknown type falls back to presence", qType: "论述题", submitted: "some essay", want: true},
		{name: "unknown type empty", qType: "论述题", submitted: "", want: false},
	}

	j := NewJudger()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := j.Correct(tc.qType, tc.submitted, "reference text, unused")
			if got != tc.want {
				t.Errorf("Correct(%s, %q) = %v, want %v", tc.qType, tc.submitted, got, tc.want)
			}
		})
	}
}
