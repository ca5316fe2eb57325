package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fireRecorder collects fired attempt ids and signals each fire.
type fireRecorder struct {
	mu    sync.Mutex
	fired []int
	ch    chan int
}

func newFireRecorder() *fireRecorder {
	return &fireRecorder{ch: make(chan int, 16)}
}

func (r *fireRecorder) handle(attemptID int) {
	r.mu.Lock()
	r.fired = append(r.fired, attemptID)
	r.mu.Unlock()
	r.ch <- attemptID
}

func (r *fireRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fired)
}

func TestDeadlineWorker_FiresElapsedDeadline(t *testing.T) {
	w := NewDeadlineWorker(10*time.Millisecond, zerolog.Nop())
	rec := newFireRecorder()
	w.SetHandler(rec.handle)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	w.Register(7, time.Now().Add(-time.Second))

	select {
	case id := <-rec.ch:
		if id != 7 {
			t.Errorf("fired attempt %d, want 7", id)
		}
	case <-time.After(time.Second):
		t.Fatal("elapsed deadline never fired")
	}
}

func TestDeadlineWorker_FiresOnlyOnce(t *testing.T) {
	w := NewDeadlineWorker(10*time.Millisecond, zerolog.Nop())
	rec := newFireRecorder()
	w.SetHandler(rec.handle)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	w.Register(1, time.Now().Add(-time.Second))

	select {
	case <-rec.ch:
	case <-time.After(time.Second):
		t.Fatal("deadline never fired")
	}

	time.Sleep(50 * time.Millisecond)
	if got := rec.count(); got != 1 {
		t.Errorf("fired %d times, want 1", got)
	}
}

func TestDeadlineWorker_CancelPreventsFire(t *testing.T) {
	w := NewDeadlineWorker(10*time.Millisecond, zerolog.Nop())
	rec := newFireRecorder()
	w.SetHandler(rec.handle)

	w.Register(3, time.Now().Add(30*time.Millisecond))
	w.Cancel(3)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	time.Sleep(100 * time.Millisecond)
	if got := rec.count(); got != 0 {
		t.Errorf("cancelled deadline fired %d times", got)
	}
}

func TestDeadlineWorker_FutureDeadlineWaits(t *testing.T) {
	w := NewDeadlineWorker(10*time.Millisecond, zerolog.Nop())
	rec := newFireRecorder()
	w.SetHandler(rec.handle)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	w.Register(5, time.Now().Add(time.Hour))

	time.Sleep(50 * time.Millisecond)
	if got := rec.count(); got != 0 {
		t.Errorf("future deadline fired %d times", got)
	}
}

func TestDeadlineWorker_StopsOnContextCancel(t *testing.T) {
	w := NewDeadlineWorker(10*time.Millisecond, zerolog.Nop())
	w.SetHandler(func(int) {})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start() did not return after context cancel")
	}
}

func TestDeadlineWorker_NilHandlerDropsFire(t *testing.T) {
	w := NewDeadlineWorker(time.Minute, zerolog.Nop())
	w.Register(1, time.Now().Add(-time.Second))

	// Must not panic without an installed handler.
	w.fireExpired(time.Now())
}
