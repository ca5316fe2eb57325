package repository

import (
	"context"
	"sync"
	"time"

	"github.com/sheetwise/sheetwise-backend/internal/model"
)

// AttemptRepository owns the canonical attempt collection. It is the
// single point of truth for timestamps: StartTime is forced at create and
// EndTime at completion, regardless of caller-supplied values. All
// read-modify-write operations run under the repository's own lock so two
// concurrent writers for the same attempt never merge from stale
// snapshots.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *model.Attempt) (*model.Attempt, error)
	GetByID(ctx context.Context, id int) (*model.Attempt, error)
	// Update merges the partial shallowly: nil fields are untouched, a
	// non-nil Answers replaces the whole sequence.
	Update(ctx context.Context, id int, update model.AttemptUpdate) (*model.Attempt, error)
	// UpsertAnswer replaces the answer for the same question id or
	// appends a new one. Fails once the attempt is submitted.
	UpsertAnswer(ctx context.Context, id int, answer model.Answer) (*model.Attempt, error)
	// AppendAnalysis records an advisory analysis result for review
	// display. Fails once the attempt is submitted.
	AppendAnalysis(ctx context.Context, id int, rec model.ImageAnalysis) (*model.Attempt, error)
	// Complete sets EndTime to the current server time and stores the
	// score report. Submission is terminal: a second Complete fails with
	// ErrAlreadySubmitted and changes nothing.
	Complete(ctx context.Context, id int, report *model.ScoreReport) (*model.Attempt, error)
	// ListBySheet returns all attempts for a sheet in creation order.
	ListBySheet(ctx context.Context, sheetID int) ([]*model.Attempt, error)
}

// MemoryAttemptRepository is the in-process AttemptRepository.
type MemoryAttemptRepository struct {
	mu       sync.RWMutex
	attempts map[int]*model.Attempt
	order    []int
	nextID   int
}

// NewMemoryAttemptRepository creates an empty in-memory attempt repository.
func NewMemoryAttemptRepository() *MemoryAttemptRepository {
	return &MemoryAttemptRepository{
		attempts: make(map[int]*model.Attempt),
		nextID:   1,
	}
}

// Create stores the attempt with a fresh id, StartTime set to the server
// clock and every derived field cleared.
func (r *MemoryAttemptRepository) Create(_ context.Context, attempt *model.Attempt) (*model.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneAttempt(attempt)
	stored.ID = r.nextID
	r.nextID++

	stored.StartTime = time.Now()
	stored.EndTime = nil
	stored.Score = nil
	stored.Percent = nil
	stored.Report = nil
	if stored.Answers == nil {
		stored.Answers = []model.Answer{}
	}

	r.attempts[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return cloneAttempt(stored), nil
}

func (r *MemoryAttemptRepository) GetByID(_ context.Context, id int) (*model.Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	attempt, ok := r.attempts[id]
	if !ok {
		return nil, model.ErrAttemptNotFound
	}
	return cloneAttempt(attempt), nil
}

func (r *MemoryAttemptRepository) Update(_ context.Context, id int, update model.AttemptUpdate) (*model.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	attempt, ok := r.attempts[id]
	if !ok {
		return nil, model.ErrAttemptNotFound
	}

	if update.Answers != nil {
		attempt.Answers = append([]model.Answer(nil), (*update.Answers)...)
	}
	if update.ImageAnalysis != nil {
		attempt.ImageAnalysis = append([]model.ImageAnalysis(nil), (*update.ImageAnalysis)...)
	}
	return cloneAttempt(attempt), nil
}

func (r *MemoryAttemptRepository) UpsertAnswer(_ context.Context, id int, answer model.Answer) (*model.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	attempt, ok := r.attempts[id]
	if !ok {
		return nil, model.ErrAttemptNotFound
	}
	if attempt.Submitted() {
		return nil, model.ErrAlreadySubmitted
	}

	replaced := false
	for i := range attempt.Answers {
		if attempt.Answers[i].QuestionID == answer.QuestionID {
			attempt.Answers[i] = answer
			replaced = true
			break
		}
	}
	if !replaced {
		attempt.Answers = append(attempt.Answers, answer)
	}
	return cloneAttempt(attempt), nil
}

func (r *MemoryAttemptRepository) AppendAnalysis(_ context.Context, id int, rec model.ImageAnalysis) (*model.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	attempt, ok := r.attempts[id]
	if !ok {
		return nil, model.ErrAttemptNotFound
	}
	if attempt.Submitted() {
		return nil, model.ErrAlreadySubmitted
	}

	attempt.ImageAnalysis = append(attempt.ImageAnalysis, rec)
	return cloneAttempt(attempt), nil
}

func (r *MemoryAttemptRepository) Complete(_ context.Context, id int, report *model.ScoreReport) (*model.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	attempt, ok := r.attempts[id]
	if !ok {
		return nil, model.ErrAttemptNotFound
	}
	if attempt.Submitted() {
		return nil, model.ErrAlreadySubmitted
	}

	now := time.Now()
	attempt.EndTime = &now

	rep := *report
	rep.Results = append([]model.QuestionResult(nil), report.Results...)
	attempt.Report = &rep

	weighted := rep.Weighted
	percent := rep.Percent
	attempt.Score = &weighted
	attempt.Percent = &percent

	return cloneAttempt(attempt), nil
}

func (r *MemoryAttemptRepository) ListBySheet(_ context.Context, sheetID int) ([]*model.Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var attempts []*model.Attempt
	for _, id := range r.order {
		if a := r.attempts[id]; a.SheetID == sheetID {
			attempts = append(attempts, cloneAttempt(a))
		}
	}
	return attempts, nil
}

// cloneAttempt deep-copies an attempt so callers never share mutable
// state with the stored copy.
func cloneAttempt(a *model.Attempt) *model.Attempt {
	out := *a
	out.Answers = append([]model.Answer(nil), a.Answers...)
	if a.ImageAnalysis != nil {
		out.ImageAnalysis = append([]model.ImageAnalysis(nil), a.ImageAnalysis...)
	}
	if a.EndTime != nil {
		t := *a.EndTime
		out.EndTime = &t
	}
	if a.Score != nil {
		v := *a.Score
		out.Score = &v
	}
	if a.Percent != nil {
		v := *a.Percent
		out.Percent = &v
	}
	if a.Report != nil {
		rep := *a.Report
		rep.Results = append([]model.QuestionResult(nil), a.Report.Results...)
		out.Report = &rep
	}
	return &out
}
