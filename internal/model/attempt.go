package model

import "time"

// Answer records the taker's selected option for one question. Unique per
// question id within an attempt; a later write replaces, never duplicates.
type Answer struct {
	QuestionID     int `json:"question_id"`
	SelectedOption int `json:"selected_option"`
}

// ImageAnalysis is an advisory suggestion from the analysis stub. It is
// kept on the attempt for review display only and never feeds scoring
// directly.
type ImageAnalysis struct {
	QuestionID      int     `json:"question_id"`
	Confidence      float64 `json:"confidence"`
	SuggestedOption int     `json:"suggested_option"`
}

// Verdict classifies one question inside a score report.
type Verdict string

const (
	VerdictCorrect    Verdict = "correct"
	VerdictIncorrect  Verdict = "incorrect"
	VerdictUnanswered Verdict = "unanswered"
)

// QuestionResult is the per-question outcome of scoring.
type QuestionResult struct {
	QuestionID     int     `json:"question_id"`
	Verdict        Verdict `json:"verdict"`
	SelectedOption *int    `json:"selected_option,omitempty"`
	CorrectOption  int     `json:"correct_option"`
}

// ScoreReport is the full result of scoring an attempt.
type ScoreReport struct {
	Correct    int `json:"correct"`
	Incorrect  int `json:"incorrect"`
	Unanswered int `json:"unanswered"`
	Total      int `json:"total"`
	// Percent is round(correct/total*100).
	Percent int `json:"percent"`
	// Weighted is correct*correctMarks - incorrect*negativeMarks.
	// Unanswered questions contribute zero.
	Weighted float64          `json:"weighted"`
	Results  []QuestionResult `json:"results"`
}

// Attempt is one taker's run through a sheet. EndTime is set exactly once
// at submission; an attempt with EndTime present is terminal.
type Attempt struct {
	ID        int        `json:"id"`
	SheetID   int        `json:"sheet_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Answers   []Answer   `json:"answers"`
	// Score is the weighted score; Percent the rounded percentage.
	// Both absent until the attempt is scored.
	Score         *float64        `json:"score,omitempty"`
	Percent       *int            `json:"percent,omitempty"`
	Report        *ScoreReport    `json:"report,omitempty"`
	ImageAnalysis []ImageAnalysis `json:"image_analysis,omitempty"`
}

// Submitted reports whether the attempt reached its terminal state.
func (a *Attempt) Submitted() bool {
	return a.EndTime != nil
}

// AttemptUpdate is a shallow partial update merged into a stored attempt
// by the repository. Nil fields are left untouched; a non-nil Answers
// replaces the whole sequence.
type AttemptUpdate struct {
	Answers       *[]Answer
	ImageAnalysis *[]ImageAnalysis
}

// CreateAttemptRequest is the payload for starting an attempt. StartTime
// is accepted for wire compatibility but the server clock always wins.
type CreateAttemptRequest struct {
	SheetID   int             `json:"sheet_id" binding:"required,min=1"`
	Answers   []AnswerRequest `json:"answers" binding:"omitempty,dive"`
	StartTime *time.Time      `json:"start_time"`
}

// AnswerRequest is one answer in a request body. SelectedOption is a
// pointer so option 0 survives required-field validation.
type AnswerRequest struct {
	QuestionID     int  `json:"question_id" binding:"required,min=1"`
	SelectedOption *int `json:"selected_option" binding:"required,min=0"`
}

// PatchAttemptRequest is the submission payload: the final answer
// sequence, replaced wholesale.
type PatchAttemptRequest struct {
	Answers []AnswerRequest `json:"answers" binding:"omitempty,dive"`
}

// ApplySuggestionRequest applies an analysis suggestion as an answer.
type ApplySuggestionRequest struct {
	QuestionID      int     `json:"question_id" binding:"required,min=1"`
	Confidence      float64 `json:"confidence" binding:"min=0,max=100"`
	SuggestedOption *int    `json:"suggested_option" binding:"required,min=0"`
}

// AnalyzeImageRequest asks the stub for a suggestion on one question.
type AnalyzeImageRequest struct {
	QuestionID int `json:"question_id" binding:"required,min=1"`
}
