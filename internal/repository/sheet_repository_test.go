package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sheetwise/sheetwise-backend/internal/model"
)

func sampleSheet(title string) *model.Sheet {
	one := 1
	return &model.Sheet{
		Title:        title,
		Description:  "demo",
		TimeLimit:    30,
		CorrectMarks: 1,
		Questions: []model.Question{
			{ID: 1, Text: "first", Options: []string{"A", "B"}, CorrectAnswer: &one},
			{ID: 2, Text: "second", Options: []string{"A", "B", "C"}},
		},
	}
}

func TestMemorySheetRepository_CreateAndGet(t *testing.T) {
	repo := NewMemorySheetRepository()
	ctx := context.Background()

	in := sampleSheet("Sample")
	created, err := repo.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != 1 {
		t.Errorf("first id = %d, want 1", created.ID)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	want := sampleSheet("Sample")
	want.ID = created.ID
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetByID() = %+v, want %+v", got, want)
	}
}

func TestMemorySheetRepository_MonotonicIDs(t *testing.T) {
	repo := NewMemorySheetRepository()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		created, err := repo.Create(ctx, sampleSheet("s"))
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if created.ID != i {
			t.Errorf("id = %d, want %d", created.ID, i)
		}
	}
}

func TestMemorySheetRepository_ListOrder(t *testing.T) {
	repo := NewMemorySheetRepository()
	ctx := context.Background()

	titles := []string{"alpha", "beta", "gamma"}
	for _, title := range titles {
		if _, err := repo.Create(ctx, sampleSheet(title)); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	sheets, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sheets) != len(titles) {
		t.Fatalf("len(List()) = %d, want %d", len(sheets), len(titles))
	}
	for i, s := range sheets {
		if s.Title != titles[i] {
			t.Errorf("sheets[%d].Title = %q, want %q", i, s.Title, titles[i])
		}
	}
}

func TestMemorySheetRepository_NotFound(t *testing.T) {
	repo := NewMemorySheetRepository()
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, 42); !errors.Is(err, model.ErrSheetNotFound) {
		t.Errorf("GetByID() error = %v, want ErrSheetNotFound", err)
	}
	if err := repo.SetAnswerKey(ctx, 42, map[int]int{1: 0}); !errors.Is(err, model.ErrSheetNotFound) {
		t.Errorf("SetAnswerKey() error = %v, want ErrSheetNotFound", err)
	}
	if _, err := repo.GetAnswerKey(ctx, 42); !errors.Is(err, model.ErrSheetNotFound) {
		t.Errorf("GetAnswerKey() error = %v, want ErrSheetNotFound", err)
	}
}

func TestMemorySheetRepository_AnswerKey(t *testing.T) {
	repo := NewMemorySheetRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleSheet("keyed"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	key, err := repo.GetAnswerKey(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetAnswerKey() error = %v", err)
	}
	if len(key) != 0 {
		t.Errorf("fresh sheet key = %v, want empty", key)
	}

	if err := repo.SetAnswerKey(ctx, created.ID, map[int]int{1: 0, 2: 2}); err != nil {
		t.Fatalf("SetAnswerKey() error = %v", err)
	}
	if err := repo.SetAnswerKey(ctx, created.ID, map[int]int{2: 1}); err != nil {
		t.Fatalf("SetAnswerKey() error = %v", err)
	}

	key, err = repo.GetAnswerKey(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetAnswerKey() error = %v", err)
	}
	if !reflect.DeepEqual(key, map[int]int{2: 1}) {
		t.Errorf("key = %v, want replacement {2:1}", key)
	}
}

func TestMemorySheetRepository_CloneIsolation(t *testing.T) {
	repo := NewMemorySheetRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleSheet("isolated"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Mutating the returned copy must not leak into the stored sheet.
	created.Questions[0].Options[0] = "mutated"
	created.Questions[0].Text = "mutated"

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Questions[0].Options[0] != "A" || got.Questions[0].Text != "first" {
		t.Errorf("stored sheet mutated through returned copy: %+v", got.Questions[0])
	}
}
