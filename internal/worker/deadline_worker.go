package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPollInterval is the deadline check resolution when config does
// not override it.
const DefaultPollInterval = time.Second

// DeadlineWorker tracks the submission deadline of every in-progress
// attempt and fires forced submission when one elapses. Registration and
// cancellation are cheap map operations; a single loop polls the
// registry, so the countdown never blocks a per-attempt goroutine.
// Cancel is guaranteed to win over a not-yet-dispatched fire: a deadline
// removed from the registry can no longer be collected.
type DeadlineWorker struct {
	mu        sync.Mutex
	deadlines map[int]time.Time
	handler   func(attemptID int)
	interval  time.Duration
	log       zerolog.Logger
}

// NewDeadlineWorker creates a DeadlineWorker polling at the given interval.
func NewDeadlineWorker(interval time.Duration, log zerolog.Logger) *DeadlineWorker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &DeadlineWorker{
		deadlines: make(map[int]time.Time),
		interval:  interval,
		log:       log.With().Str("component", "deadline_worker").Logger(),
	}
}

// SetHandler installs the forced-submission callback. Wired once at
// startup, before Start.
func (w *DeadlineWorker) SetHandler(fn func(attemptID int)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handler = fn
}

// Register arms the deadline for an attempt.
func (w *DeadlineWorker) Register(attemptID int, deadline time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.deadlines[attemptID] = deadline
	w.log.Debug().Int("attempt_id", attemptID).Time("deadline", deadline).Msg("Deadline registered")
}

// Cancel disarms the deadline for an attempt. Called on every transition
// to the submitted state, whichever path caused it.
func (w *DeadlineWorker) Cancel(attemptID int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.deadlines, attemptID)
}

// Start runs the polling loop until the context is cancelled.
func (w *DeadlineWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("DeadlineWorker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("DeadlineWorker stopped")
			return
		case now := <-ticker.C:
			w.fireExpired(now)
		}
	}
}

// fireExpired collects elapsed deadlines under the lock, then invokes the
// handler outside it so a slow submission cannot stall registration.
func (w *DeadlineWorker) fireExpired(now time.Time) {
	w.mu.Lock()
	var expired []int
	for id, deadline := range w.deadlines {
		if !now.Before(deadline) {
			expired = append(expired, id)
			delete(w.deadlines, id)
		}
	}
	handler := w.handler
	w.mu.Unlock()

	if handler == nil {
		return
	}
	for _, id := range expired {
		w.log.Info().Int("attempt_id", id).Msg("Time limit elapsed, forcing submission")
		handler(id)
	}
}
