package grader

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/lshigami/Quizling/internal/model"
)

// Answer key grammar for fill-in-blank questions: blanks are separated by a
// double delimiter, acceptable variants within one blank by a single one.
// "北京;北平;;上海;沪" is two blanks with two variants each.
const (
	blankDelimiter   = ";;"
	variantDelimiter = ";"
)

// Strategy decides whether a submitted raw answer matches a stored answer key.
// Implementations are pure; verdicts are always binary.
type Strategy interface {
	Correct(submitted, key string) bool
}

// Judger routes a question type to the matching Strategy. Unknown types fall
// back to presence-only free-response grading.
type Judger struct {
	strategies map[string]Strategy
	fallback   Strategy
}

func NewJudger() *Judger {
	return &Judger{
		strategies: map[string]Strategy{
			model.QuestionTypeSingleChoice: exactMatch{},
			model.QuestionTypeTrueFalse:    exactMatch{},
			model.QuestionTypeMultiChoice:  letterSet{},
			model.QuestionTypeFillBlank:    blankVariants{},
		},
		fallback: presence{},
	}
}

func (j *Judger) Correct(questionType, submitted, key string) bool {
	if s, ok := j.strategies[questionType]; ok {
		return s.Correct(submitted, key)
	}
	return j.fallback.Correct(submitted, key)
}

// exactMatch covers single-choice and true/false: trimmed string equality,
// no case folding and no boolean coercion. An empty submission never matches.
type exactMatch struct{}

func (exactMatch) Correct(submitted, key string) bool {
	s := strings.TrimSpace(submitted)
	return s != "" && s == strings.TrimSpace(key)
}

// letterSet covers multi-choice: both sides are unordered letter sequences,
// compared after sorting. "BA" matches "AB"; "AB" does not match "ABC".
type letterSet struct{}

func (letterSet) Correct(submitted, key string) bool {
	s := strings.TrimSpace(submitted)
	if s == "" {
		return false
	}
	return sortLetters(s) == sortLetters(strings.TrimSpace(key))
}

func sortLetters(s string) string {
	letters := []rune(s)
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	return string(letters)
}

// blankVariants covers fill-in-blank. The submission is either a JSON array
// with one entry per blank, or a bare string answering blank #1 only. A wrong
// entry count fails the whole question; each blank must equal one of its
// variants after trimming.
type blankVariants struct{}

func (blankVariants) Correct(submitted, key string) bool {
	blanks := parseBlanks(key)
	entries := parseSubmission(submitted)
	if len(entries) != len(blanks) {
		return false
	}
	for i, variants := range blanks {
		if !matchesAny(entries[i], variants) {
			return false
		}
	}
	return true
}

// parseBlanks splits an answer key into per-blank variant lists. A blank
// whose substring declares no variants accepts the whole substring verbatim.
func parseBlanks(key string) [][]string {
	parts := strings.Split(key, blankDelimiter)
	blanks := make([][]string, 0, len(parts))
	for _, part := range parts {
		var variants []string
		for _, v := range strings.Split(part, variantDelimiter) {
			if v = strings.TrimSpace(v); v != "" {
				variants = append(variants, v)
			}
		}
		if len(variants) == 0 {
			variants = []string{strings.TrimSpace(part)}
		}
		blanks = append(blanks, variants)
	}
	return blanks
}

// parseSubmission decodes a JSON-array submission into per-blank entries.
// Anything that is not a well-formed JSON string array is taken as a bare
// string answering the first blank (single-blank compatibility mode).
func parseSubmission(submitted string) []string {
	trimmed := strings.TrimSpace(submitted)
	if strings.HasPrefix(trimmed, "[") {
		var entries []string
		if err := json.Unmarshal([]byte(trimmed), &entries); err == nil {
			return entries
		}
	}
	return []string{submitted}
}

func matchesAny(entry string, variants []string) bool {
	entry = strings.TrimSpace(entry)
	for _, v := range variants {
		if entry == v {
			return true
		}
	}
	return false
}

// presence covers free-response types: any non-blank submission is correct.
// Content is not evaluated.
type presence struct{}

func (presence) Correct(submitted, _ string) bool {
	return strings.TrimSpace(submitted) != ""
}
