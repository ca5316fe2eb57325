package repository

import (
	"context"
	"sync"

	"github.com/sheetwise/sheetwise-backend/internal/model"
)

// SheetRepository owns the canonical sheet collection and any
// late-supplied answer keys. Implementations must serialize writes so a
// persistent backing store is a drop-in replacement.
type SheetRepository interface {
	// Create assigns a fresh id and stores the sheet. Ids increase
	// monotonically from 1 and are never reused.
	Create(ctx context.Context, sheet *model.Sheet) (*model.Sheet, error)
	GetByID(ctx context.Context, id int) (*model.Sheet, error)
	// List returns all sheets in creation order.
	List(ctx context.Context) ([]*model.Sheet, error)
	// SetAnswerKey stores the supplied key (question id to correct
	// option) for a sheet. Replaces any previous key wholesale.
	SetAnswerKey(ctx context.Context, sheetID int, key map[int]int) error
	// GetAnswerKey returns the supplied key for a sheet, or an empty map
	// when none was supplied.
	GetAnswerKey(ctx context.Context, sheetID int) (map[int]int, error)
}

// MemorySheetRepository is the in-process SheetRepository. Collections
// live for the lifetime of the server and reset on restart.
type MemorySheetRepository struct {
	mu     sync.RWMutex
	sheets map[int]*model.Sheet
	order  []int
	keys   map[int]map[int]int
	nextID int
}

// NewMemorySheetRepository creates an empty in-memory sheet repository.
func NewMemorySheetRepository() *MemorySheetRepository {
	return &MemorySheetRepository{
		sheets: make(map[int]*model.Sheet),
		keys:   make(map[int]map[int]int),
		nextID: 1,
	}
}

// Create stores a copy of the sheet under a freshly assigned id.
func (r *MemorySheetRepository) Create(_ context.Context, sheet *model.Sheet) (*model.Sheet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneSheet(sheet)
	stored.ID = r.nextID
	r.nextID++

	r.sheets[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return cloneSheet(stored), nil
}

func (r *MemorySheetRepository) GetByID(_ context.Context, id int) (*model.Sheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sheet, ok := r.sheets[id]
	if !ok {
		return nil, model.ErrSheetNotFound
	}
	return cloneSheet(sheet), nil
}

func (r *MemorySheetRepository) List(_ context.Context) ([]*model.Sheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sheets := make([]*model.Sheet, 0, len(r.order))
	for _, id := range r.order {
		sheets = append(sheets, cloneSheet(r.sheets[id]))
	}
	return sheets, nil
}

func (r *MemorySheetRepository) SetAnswerKey(_ context.Context, sheetID int, key map[int]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sheets[sheetID]; !ok {
		return model.ErrSheetNotFound
	}

	stored := make(map[int]int, len(key))
	for qid, opt := range key {
		stored[qid] = opt
	}
	r.keys[sheetID] = stored
	return nil
}

func (r *MemorySheetRepository) GetAnswerKey(_ context.Context, sheetID int) (map[int]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.sheets[sheetID]; !ok {
		return nil, model.ErrSheetNotFound
	}

	out := make(map[int]int, len(r.keys[sheetID]))
	for qid, opt := range r.keys[sheetID] {
		out[qid] = opt
	}
	return out, nil
}

// cloneSheet deep-copies a sheet so callers never share mutable state
// with the stored copy.
func cloneSheet(s *model.Sheet) *model.Sheet {
	out := *s
	out.Questions = make([]model.Question, len(s.Questions))
	for i, q := range s.Questions {
		cq := q
		cq.Options = append([]string(nil), q.Options...)
		if q.CorrectAnswer != nil {
			v := *q.CorrectAnswer
			cq.CorrectAnswer = &v
		}
		out.Questions[i] = cq
	}
	return &out
}
