package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sheetwise/sheetwise-backend/internal/model"
	"github.com/sheetwise/sheetwise-backend/internal/repository"
	"github.com/sheetwise/sheetwise-backend/internal/scoring"
)

// DeadlineTimer is the countdown collaborator. The attempt service
// registers a deadline when an attempt starts and cancels it on any
// transition to the submitted state, so a manual submit stops the timer
// from also firing.
type DeadlineTimer interface {
	Register(attemptID int, deadline time.Time)
	Cancel(attemptID int)
}

// AttemptState is a read-only snapshot of a running attempt, used by the
// live stream to render the countdown.
type AttemptState struct {
	AttemptID        int     `json:"attempt_id"`
	SheetID          int     `json:"sheet_id"`
	Answered         int     `json:"answered"`
	Submitted        bool    `json:"submitted"`
	RemainingSeconds float64 `json:"remaining_seconds"`
}

// AttemptService drives the attempt lifecycle: created, in progress,
// submitted. Submission is terminal and single-shot; scoring runs
// synchronously inside Submit.
type AttemptService struct {
	attempts repository.AttemptRepository
	sheets   repository.SheetRepository
	timer    DeadlineTimer
	log      zerolog.Logger
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(
	attempts repository.AttemptRepository,
	sheets repository.SheetRepository,
	timer DeadlineTimer,
	log zerolog.Logger,
) *AttemptService {
	return &AttemptService{
		attempts: attempts,
		sheets:   sheets,
		timer:    timer,
		log:      log.With().Str("component", "attempt_service").Logger(),
	}
}

// Start creates an attempt for an existing sheet and arms its deadline.
// Initial answers, when provided, are validated against the sheet; the
// answer sequence is otherwise empty, never zero-initialized, so absence
// is the only representation of "unanswered".
func (s *AttemptService) Start(ctx context.Context, sheetID int, answers []model.Answer) (*model.Attempt, error) {
	sheet, err := s.sheets.GetByID(ctx, sheetID)
	if err != nil {
		return nil, err
	}

	for _, a := range answers {
		if err := validateSelection(sheet, a.QuestionID, a.SelectedOption); err != nil {
			return nil, err
		}
	}

	attempt, err := s.attempts.Create(ctx, &model.Attempt{
		SheetID: sheetID,
		Answers: answers,
	})
	if err != nil {
		return nil, fmt.Errorf("create attempt: %w", err)
	}

	if s.timer != nil {
		deadline := attempt.StartTime.Add(time.Duration(sheet.TimeLimit) * time.Minute)
		s.timer.Register(attempt.ID, deadline)
	}

	s.log.Info().
		Int("attempt_id", attempt.ID).
		Int("sheet_id", sheetID).
		Msg("Attempt started")
	return attempt, nil
}

// GetByID returns one attempt.
func (s *AttemptService) GetByID(ctx context.Context, id int) (*model.Attempt, error) {
	return s.attempts.GetByID(ctx, id)
}

// ListBySheet returns all attempts for an existing sheet.
func (s *AttemptService) ListBySheet(ctx context.Context, sheetID int) ([]*model.Attempt, error) {
	if _, err := s.sheets.GetByID(ctx, sheetID); err != nil {
		return nil, err
	}
	return s.attempts.ListBySheet(ctx, sheetID)
}

// RecordAnswer upserts one answer while the attempt is in progress. The
// selected option is range-checked against the question's option count.
func (s *AttemptService) RecordAnswer(ctx context.Context, attemptID, questionID, selectedOption int) (*model.Attempt, error) {
	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Submitted() {
		return nil, model.ErrAlreadySubmitted
	}

	sheet, err := s.sheets.GetByID(ctx, attempt.SheetID)
	if err != nil {
		return nil, err
	}
	if err := validateSelection(sheet, questionID, selectedOption); err != nil {
		return nil, err
	}

	return s.attempts.UpsertAnswer(ctx, attemptID, model.Answer{
		QuestionID:     questionID,
		SelectedOption: selectedOption,
	})
}

// ApplySuggestion records an analysis suggestion as if it were a manual
// answer and keeps the advisory record on the attempt for later review.
// The confidence value never feeds scoring.
func (s *AttemptService) ApplySuggestion(ctx context.Context, attemptID int, suggestion model.ImageAnalysis) (*model.Attempt, error) {
	if _, err := s.RecordAnswer(ctx, attemptID, suggestion.QuestionID, suggestion.SuggestedOption); err != nil {
		return nil, err
	}
	return s.attempts.AppendAnalysis(ctx, attemptID, suggestion)
}

// Submit transitions the attempt to its terminal state: the answer
// sequence is optionally replaced wholesale, the key is resolved, scoring
// runs synchronously and EndTime is set exactly once. A second Submit
// fails with ErrAlreadySubmitted and does not re-score. Scoring failures
// (incomplete key, zero questions) leave the attempt in progress: any
// answer sequence supplied with the failed submit is kept, but no score,
// report or end time is written.
func (s *AttemptService) Submit(ctx context.Context, attemptID int, answers []model.Answer) (*model.Attempt, error) {
	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Submitted() {
		return nil, model.ErrAlreadySubmitted
	}

	sheet, err := s.sheets.GetByID(ctx, attempt.SheetID)
	if err != nil {
		return nil, err
	}

	if answers != nil {
		for _, a := range answers {
			if err := validateSelection(sheet, a.QuestionID, a.SelectedOption); err != nil {
				return nil, err
			}
		}
		if attempt, err = s.attempts.Update(ctx, attemptID, model.AttemptUpdate{Answers: &answers}); err != nil {
			return nil, err
		}
	}

	suppliedKey, err := s.sheets.GetAnswerKey(ctx, sheet.ID)
	if err != nil {
		return nil, err
	}
	key, err := scoring.ResolveKey(sheet, suppliedKey)
	if err != nil {
		return nil, err
	}

	report, err := scoring.Score(sheet.Questions, key, attempt.Answers, scoring.Weights{
		Correct:  sheet.CorrectMarks,
		Negative: sheet.NegativeMarks,
	})
	if err != nil {
		return nil, err
	}

	submitted, err := s.attempts.Complete(ctx, attemptID, report)
	if err != nil {
		return nil, err
	}

	if s.timer != nil {
		s.timer.Cancel(attemptID)
	}

	s.log.Info().
		Int("attempt_id", attemptID).
		Int("sheet_id", sheet.ID).
		Int("correct", report.Correct).
		Int("incorrect", report.Incorrect).
		Int("unanswered", report.Unanswered).
		Float64("score", report.Weighted).
		Int("percent", report.Percent).
		Msg("Attempt submitted and scored")
	return submitted, nil
}

// ForceSubmit is invoked by the deadline worker when an attempt's time
// limit elapses. It submits with whatever answers were recorded. A fire
// that loses the race against a manual submit is a silent no-op.
func (s *AttemptService) ForceSubmit(attemptID int) {
	_, err := s.Submit(context.Background(), attemptID, nil)
	switch {
	case err == nil:
		s.log.Info().Int("attempt_id", attemptID).Msg("Attempt force-submitted on deadline")
	case errors.Is(err, model.ErrAlreadySubmitted):
		// Manual submit won the race.
	default:
		s.log.Error().Err(err).Int("attempt_id", attemptID).Msg("Forced submission failed")
	}
}

// State returns the countdown snapshot for a live attempt.
func (s *AttemptService) State(ctx context.Context, attemptID int) (*AttemptState, error) {
	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	sheet, err := s.sheets.GetByID(ctx, attempt.SheetID)
	if err != nil {
		return nil, err
	}

	remaining := time.Until(attempt.StartTime.Add(time.Duration(sheet.TimeLimit) * time.Minute))
	if remaining < 0 || attempt.Submitted() {
		remaining = 0
	}

	return &AttemptState{
		AttemptID:        attempt.ID,
		SheetID:          sheet.ID,
		Answered:         len(attempt.Answers),
		Submitted:        attempt.Submitted(),
		RemainingSeconds: remaining.Seconds(),
	}, nil
}

// validateSelection checks that a question belongs to the sheet and the
// selected option is a valid index into its option set.
func validateSelection(sheet *model.Sheet, questionID, selectedOption int) error {
	for _, q := range sheet.Questions {
		if q.ID != questionID {
			continue
		}
		if selectedOption < 0 || selectedOption >= len(q.Options) {
			return fmt.Errorf("question %d: option %d: %w", questionID, selectedOption, model.ErrOptionOutOfRange)
		}
		return nil
	}
	return fmt.Errorf("question %d: %w", questionID, model.ErrUnknownQuestion)
}
