package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sheetwise/sheetwise-backend/internal/model"
	"github.com/sheetwise/sheetwise-backend/internal/repository"
)

// legacyOptions is the implicit option set of the bare index-only
// question variant.
var legacyOptions = []string{"A", "B", "C", "D"}

// SheetService handles sheet authoring: semantic validation, legacy
// question normalization and answer-key attachment. Sheets are validated
// fully before any repository write.
type SheetService struct {
	repo repository.SheetRepository
	log  zerolog.Logger
}

// NewSheetService creates a new SheetService.
func NewSheetService(repo repository.SheetRepository, log zerolog.Logger) *SheetService {
	return &SheetService{
		repo: repo,
		log:  log.With().Str("component", "sheet_service").Logger(),
	}
}

// Create validates and stores a new sheet.
func (s *SheetService) Create(ctx context.Context, req *model.CreateSheetRequest) (*model.Sheet, error) {
	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	sheet, err := s.repo.Create(ctx, &model.Sheet{
		Title:         req.Title,
		Description:   req.Description,
		TimeLimit:     req.TimeLimit,
		CorrectMarks:  req.CorrectMarks,
		NegativeMarks: req.NegativeMarks,
		Questions:     questions,
	})
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	s.log.Info().
		Int("sheet_id", sheet.ID).
		Int("questions", len(sheet.Questions)).
		Int("time_limit_min", sheet.TimeLimit).
		Msg("Sheet created")
	return sheet, nil
}

// GetByID returns one sheet.
func (s *SheetService) GetByID(ctx context.Context, id int) (*model.Sheet, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all sheets in creation order.
func (s *SheetService) List(ctx context.Context) ([]*model.Sheet, error) {
	return s.repo.List(ctx)
}

// SetAnswerKey validates and stores a late-supplied answer key. Every
// entry must reference a question of the sheet with an in-range option;
// nothing is written when any entry is invalid.
func (s *SheetService) SetAnswerKey(ctx context.Context, sheetID int, req *model.SetAnswerKeyRequest) error {
	sheet, err := s.repo.GetByID(ctx, sheetID)
	if err != nil {
		return err
	}

	optionCount := make(map[int]int, len(sheet.Questions))
	for _, q := range sheet.Questions {
		optionCount[q.ID] = len(q.Options)
	}

	key := make(map[int]int, len(req.Entries))
	for _, e := range req.Entries {
		count, ok := optionCount[e.QuestionID]
		if !ok {
			return fmt.Errorf("question %d: %w", e.QuestionID, model.ErrUnknownQuestion)
		}
		if e.CorrectOption < 0 || e.CorrectOption >= count {
			return fmt.Errorf("question %d: option %d: %w", e.QuestionID, e.CorrectOption, model.ErrOptionOutOfRange)
		}
		if _, dup := key[e.QuestionID]; dup {
			return fmt.Errorf("question %d: %w", e.QuestionID, model.ErrDuplicateQuestion)
		}
		key[e.QuestionID] = e.CorrectOption
	}

	if err := s.repo.SetAnswerKey(ctx, sheetID, key); err != nil {
		return fmt.Errorf("set answer key: %w", err)
	}

	s.log.Info().
		Int("sheet_id", sheetID).
		Int("entries", len(key)).
		Msg("Answer key supplied")
	return nil
}

// buildQuestions normalizes and validates question payloads. Duplicate
// ids, half-specified shapes and out-of-range embedded answers are all
// rejected before anything reaches the repository.
func buildQuestions(reqs []model.CreateQuestionRequest) ([]model.Question, error) {
	questions := make([]model.Question, 0, len(reqs))
	seen := make(map[int]struct{}, len(reqs))

	for _, q := range reqs {
		if _, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("question %d: %w", q.ID, model.ErrDuplicateQuestion)
		}
		seen[q.ID] = struct{}{}

		options := q.Options
		switch {
		case q.Text != "" && len(options) >= 2:
			// Canonical full-text variant.
		case q.Text == "" && len(options) == 0:
			// Legacy index-only record: fixed four-way choice.
			options = append([]string(nil), legacyOptions...)
		default:
			return nil, fmt.Errorf("question %d: %w", q.ID, model.ErrInvalidQuestion)
		}

		var correct *int
		if q.CorrectAnswer != nil {
			if *q.CorrectAnswer < 0 || *q.CorrectAnswer >= len(options) {
				return nil, fmt.Errorf("question %d: correct_answer %d: %w", q.ID, *q.CorrectAnswer, model.ErrOptionOutOfRange)
			}
			v := *q.CorrectAnswer
			correct = &v
		}

		questions = append(questions, model.Question{
			ID:            q.ID,
			Text:          q.Text,
			Options:       options,
			CorrectAnswer: correct,
		})
	}

	return questions, nil
}
