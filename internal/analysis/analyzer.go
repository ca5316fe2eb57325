// Package analysis is the image-analysis stand-in. It honours the
// contract of the real pipeline (a confidence in [0,100) and a suggested
// option in 0..3 after a processing delay) without doing any actual
// recognition. Its output is advisory only and is never treated as
// ground truth by scoring.
package analysis

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sheetwise/sheetwise-backend/internal/model"
)

// Analyzer simulates an external image-recognition collaborator.
type Analyzer struct {
	delay time.Duration
	mu    sync.Mutex // rand.Rand is not safe for concurrent use
	rng   *rand.Rand
	log   zerolog.Logger
}

// NewAnalyzer creates an Analyzer with the given simulated latency.
func NewAnalyzer(delay time.Duration, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		delay: delay,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		log:   log.With().Str("component", "analyzer").Logger(),
	}
}

// Analyze returns a random suggestion for the question after the
// configured delay. Cancelling the context aborts the wait; the caller's
// attempt state is never touched, so a failed or slow analysis never
// blocks manual answering.
func (a *Analyzer) Analyze(ctx context.Context, questionID int) (*model.ImageAnalysis, error) {
	if a.delay > 0 {
		timer := time.NewTimer(a.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	a.mu.Lock()
	confidence := a.rng.Float64() * 100
	suggested := a.rng.Intn(4)
	a.mu.Unlock()

	a.log.Debug().
		Int("question_id", questionID).
		Float64("confidence", confidence).
		Int("suggested_option", suggested).
		Msg("Image analyzed")

	return &model.ImageAnalysis{
		QuestionID:      questionID,
		Confidence:      confidence,
		SuggestedOption: suggested,
	}, nil
}
