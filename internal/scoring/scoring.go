// Package scoring is the pure scoring engine: given questions, a
// resolved answer key, an answer sequence and marking weights it derives
// per-question verdicts and the aggregate scores. It performs no I/O and
// never mutates its inputs.
package scoring

import (
	"fmt"
	"math"

	"github.com/sheetwise/sheetwise-backend/internal/model"
)

// Weights are the marking weights of a sheet. Negative is stored
// non-negative and applied as a deduction.
type Weights struct {
	Correct  float64
	Negative float64
}

// Score evaluates an answer sequence against the key. Matching is by
// question id, never by position: answer sequences may be sparse or
// reordered. A question with no answer entry verdicts unanswered and is
// neither rewarded nor penalized.
func Score(questions []model.Question, key map[int]int, answers []model.Answer, w Weights) (*model.ScoreReport, error) {
	total := len(questions)
	if total == 0 {
		return nil, model.ErrNoQuestions
	}

	selected := make(map[int]int, len(answers))
	for _, a := range answers {
		selected[a.QuestionID] = a.SelectedOption
	}

	report := &model.ScoreReport{
		Total:   total,
		Results: make([]model.QuestionResult, 0, total),
	}

	for _, q := range questions {
		correctOption, ok := key[q.ID]
		if !ok {
			return nil, fmt.Errorf("question %d: %w", q.ID, model.ErrKeyIncomplete)
		}

		result := model.QuestionResult{
			QuestionID:    q.ID,
			CorrectOption: correctOption,
		}

		sel, answered := selected[q.ID]
		switch {
		case !answered:
			result.Verdict = model.VerdictUnanswered
			report.Unanswered++
		case sel == correctOption:
			v := sel
			result.SelectedOption = &v
			result.Verdict = model.VerdictCorrect
			report.Correct++
		default:
			v := sel
			result.SelectedOption = &v
			result.Verdict = model.VerdictIncorrect
			report.Incorrect++
		}

		report.Results = append(report.Results, result)
	}

	report.Percent = int(math.Round(float64(report.Correct) / float64(total) * 100))
	report.Weighted = float64(report.Correct)*w.Correct - float64(report.Incorrect)*w.Negative
	return report, nil
}

// ResolveKey produces the authoritative correct option per question id.
// An answer embedded on the question at creation wins; otherwise the
// supplied key fills the gap. Any question left without a resolvable
// answer fails with ErrKeyIncomplete: partial keys never produce partial
// scores silently.
func ResolveKey(sheet *model.Sheet, supplied map[int]int) (map[int]int, error) {
	key := make(map[int]int, len(sheet.Questions))
	for _, q := range sheet.Questions {
		switch {
		case q.CorrectAnswer != nil:
			key[q.ID] = *q.CorrectAnswer
		default:
			opt, ok := supplied[q.ID]
			if !ok {
				return nil, fmt.Errorf("question %d: %w", q.ID, model.ErrKeyIncomplete)
			}
			key[q.ID] = opt
		}
	}
	return key, nil
}
