package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sheetwise/sheetwise-backend/internal/model"
)

func TestMemoryAttemptRepository_CreateDefaults(t *testing.T) {
	repo := NewMemoryAttemptRepository()
	ctx := context.Background()

	stale := time.Now().Add(-time.Hour)
	score := 9.0
	percent := 90
	before := time.Now()
	created, err := repo.Create(ctx, &model.Attempt{
		SheetID:   7,
		StartTime: stale,
		EndTime:   &stale,
		Score:     &score,
		Percent:   &percent,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.ID != 1 {
		t.Errorf("id = %d, want 1", created.ID)
	}
	if created.SheetID != 7 {
		t.Errorf("SheetID = %d, want 7", created.SheetID)
	}
	if created.StartTime.Before(before) {
		t.Errorf("StartTime = %v, want server clock, not caller-supplied %v", created.StartTime, stale)
	}
	if created.EndTime != nil || created.Score != nil || created.Percent != nil || created.Report != nil {
		t.Errorf("derived fields not cleared at create: %+v", created)
	}
	if created.Answers == nil || len(created.Answers) != 0 {
		t.Errorf("Answers = %v, want empty non-nil slice", created.Answers)
	}
	if created.Submitted() {
		t.Error("fresh attempt reports submitted")
	}
}

func TestMemoryAttemptRepository_UpsertAnswer(t *testing.T) {
	repo := NewMemoryAttemptRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Attempt{SheetID: 1})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := repo.UpsertAnswer(ctx, created.ID, model.Answer{QuestionID: 1, SelectedOption: 0}); err != nil {
		t.Fatalf("UpsertAnswer() error = %v", err)
	}
	if _, err := repo.UpsertAnswer(ctx, created.ID, model.Answer{QuestionID: 2, SelectedOption: 3}); err != nil {
		t.Fatalf("UpsertAnswer() error = %v", err)
	}
	got, err := repo.UpsertAnswer(ctx, created.ID, model.Answer{QuestionID: 1, SelectedOption: 2})
	if err != nil {
		t.Fatalf("UpsertAnswer() error = %v", err)
	}

	if len(got.Answers) != 2 {
		t.Fatalf("len(Answers) = %d, want 2 (replace, not duplicate)", len(got.Answers))
	}
	if got.Answers[0].QuestionID != 1 || got.Answers[0].SelectedOption != 2 {
		t.Errorf("Answers[0] = %+v, want question 1 option 2", got.Answers[0])
	}
	if got.Answers[1].QuestionID != 2 || got.Answers[1].SelectedOption != 3 {
		t.Errorf("Answers[1] = %+v, want question 2 option 3", got.Answers[1])
	}
}

func TestMemoryAttemptRepository_ConcurrentUpserts(t *testing.T) {
	repo := NewMemoryAttemptRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Attempt{SheetID: 1})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(qid int) {
			defer wg.Done()
			if _, err := repo.UpsertAnswer(ctx, created.ID, model.Answer{QuestionID: qid, SelectedOption: 0}); err != nil {
				t.Errorf("UpsertAnswer(%d) error = %v", qid, err)
			}
		}(i + 1)
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(got.Answers) != n {
		t.Errorf("len(Answers) = %d, want %d (no lost updates)", len(got.Answers), n)
	}
}

func TestMemoryAttemptRepository_UpdateMergesShallowly(t *testing.T) {
	repo := NewMemoryAttemptRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Attempt{
		SheetID: 1,
		Answers: []model.Answer{{QuestionID: 1, SelectedOption: 0}},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	analyses := []model.ImageAnalysis{{QuestionID: 1, Confidence: 80, SuggestedOption: 2}}
	got, err := repo.Update(ctx, created.ID, model.AttemptUpdate{ImageAnalysis: &analyses})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(got.Answers) != 1 {
		t.Errorf("untouched Answers = %v, want preserved", got.Answers)
	}
	if len(got.ImageAnalysis) != 1 {
		t.Errorf("ImageAnalysis = %v, want 1 record", got.ImageAnalysis)
	}

	replacement := []model.Answer{{QuestionID: 2, SelectedOption: 1}}
	got, err = repo.Update(ctx, created.ID, model.AttemptUpdate{Answers: &replacement})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(got.Answers) != 1 || got.Answers[0].QuestionID != 2 {
		t.Errorf("Answers = %v, want wholesale replacement", got.Answers)
	}
	if len(got.ImageAnalysis) != 1 {
		t.Errorf("ImageAnalysis = %v, want preserved across answer update", got.ImageAnalysis)
	}
}

func TestMemoryAttemptRepository_CompleteIsTerminal(t *testing.T) {
	repo := NewMemoryAttemptRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Attempt{SheetID: 1})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	report := &model.ScoreReport{Correct: 2, Total: 4, Percent: 50, Weighted: 1.5}
	done, err := repo.Complete(ctx, created.ID, report)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if done.EndTime == nil || !done.Submitted() {
		t.Fatal("completed attempt has no EndTime")
	}
	if done.Score == nil || *done.Score != 1.5 {
		t.Errorf("Score = %v, want 1.5", done.Score)
	}
	if done.Percent == nil || *done.Percent != 50 {
		t.Errorf("Percent = %v, want 50", done.Percent)
	}
	firstEnd := *done.EndTime

	if _, err := repo.Complete(ctx, created.ID, report); !errors.Is(err, model.ErrAlreadySubmitted) {
		t.Fatalf("second Complete() error = %v, want ErrAlreadySubmitted", err)
	}
	if _, err := repo.UpsertAnswer(ctx, created.ID, model.Answer{QuestionID: 1}); !errors.Is(err, model.ErrAlreadySubmitted) {
		t.Errorf("UpsertAnswer() after submit error = %v, want ErrAlreadySubmitted", err)
	}
	if _, err := repo.AppendAnalysis(ctx, created.ID, model.ImageAnalysis{QuestionID: 1}); !errors.Is(err, model.ErrAlreadySubmitted) {
		t.Errorf("AppendAnalysis() after submit error = %v, want ErrAlreadySubmitted", err)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !got.EndTime.Equal(firstEnd) {
		t.Errorf("EndTime moved from %v to %v on rejected resubmit", firstEnd, got.EndTime)
	}
}

func TestMemoryAttemptRepository_ListBySheet(t *testing.T) {
	repo := NewMemoryAttemptRepository()
	ctx := context.Background()

	for _, sheetID := range []int{1, 2, 1, 1, 2} {
		if _, err := repo.Create(ctx, &model.Attempt{SheetID: sheetID}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	attempts, err := repo.ListBySheet(ctx, 1)
	if err != nil {
		t.Fatalf("ListBySheet() error = %v", err)
	}
	wantIDs := []int{1, 3, 4}
	if len(attempts) != len(wantIDs) {
		t.Fatalf("len = %d, want %d", len(attempts), len(wantIDs))
	}
	for i, a := range attempts {
		if a.ID != wantIDs[i] {
			t.Errorf("attempts[%d].ID = %d, want %d", i, a.ID, wantIDs[i])
		}
	}
}

func TestMemoryAttemptRepository_NotFound(t *testing.T) {
	repo := NewMemoryAttemptRepository()
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, 42); !errors.Is(err, model.ErrAttemptNotFound) {
		t.Errorf("GetByID() error = %v, want ErrAttemptNotFound", err)
	}
	if _, err := repo.Update(ctx, 42, model.AttemptUpdate{}); !errors.Is(err, model.ErrAttemptNotFound) {
		t.Errorf("Update() error = %v, want ErrAttemptNotFound", err)
	}
	if _, err := repo.Complete(ctx, 42, &model.ScoreReport{}); !errors.Is(err, model.ErrAttemptNotFound) {
		t.Errorf("Complete() error = %v, want ErrAttemptNotFound", err)
	}
}
