package service

import "errors"

// Failure taxonomy of the exam engine. Controllers map these to HTTP status
// codes; all failures are scoped to a single operation on a single exam.
var (
	ErrExamNotFound     = errors.New("exam not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrNotOwner         = errors.New("caller is not the exam owner")
	ErrAlreadySubmitted = errors.New("exam has already been submitted")
)
