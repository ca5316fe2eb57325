package model

import "errors"

// Domain sentinel errors. Handlers map these onto HTTP statuses and
// response codes with errors.Is; services wrap them with context via
// fmt.Errorf("...: %w", err).
var (
	// Not-found errors.
	ErrSheetNotFound   = errors.New("sheet not found")
	ErrAttemptNotFound = errors.New("attempt not found")

	// Validation errors.
	ErrInvalidQuestion   = errors.New("question must have text and options or be a bare index record")
	ErrDuplicateQuestion = errors.New("duplicate question id")
	ErrUnknownQuestion   = errors.New("question does not belong to the sheet")
	ErrOptionOutOfRange  = errors.New("option index out of range")

	// State errors. These never corrupt stored state: the prior valid
	// state of the attempt remains readable after the failure.
	ErrAlreadySubmitted = errors.New("attempt already submitted")
	ErrKeyIncomplete    = errors.New("answer key incomplete")
	ErrNoQuestions      = errors.New("sheet has no questions")
)
