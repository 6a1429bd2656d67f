package scheduler

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestNewRejectsNilJob(t *testing.T) {
	if _, err := New(nil, 12, quietLogger()); err == nil {
		t.Fatal("expected error for nil job")
	}
}

func TestStartRunNowFiresImmediately(t *testing.T) {
	done := make(chan struct{})
	var once sync.Once
	job := func(ctx context.Context) error {
		once.Do(func() { close(done) })
		return nil
	}

	s, err := New(job, 12, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	s.Start(context.Background(), true)
	defer s.Stop(time.Second)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("startup run never fired")
	}
}

func TestOverlappingTickIsSkipped(t *testing.T) {
	block := make(chan struct{})
	var mu sync.Mutex
	runs := 0
	job := func(ctx context.Context) error {
		mu.Lock()
		runs++
		mu.Unlock()
		<-block
		return nil
	}

	s, err := New(job, 12, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	s.baseCtx = context.Background()

	go s.fire()

	// Give the first run time to take the guard, then tick again.
	time.Sleep(50 * time.Millisecond)
	s.fire()

	mu.Lock()
	got := runs
	mu.Unlock()
	if got != 1 {
		t.Fatalf("overlapping tick ran the job: runs=%d", got)
	}
	close(block)
}

func TestRunErrorDoesNotPoisonScheduler(t *testing.T) {
	calls := make(chan struct{}, 2)
	job := func(ctx context.Context) error {
		calls <- struct{}{}
		return errors.New("boom")
	}

	s, err := New(job, 12, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	s.baseCtx = context.Background()

	s.fire()
	s.fire()

	if len(calls) != 2 {
		t.Fatalf("expected 2 runs despite errors, got %d", len(calls))
	}
}
