package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

type countingJob struct {
	mu    sync.Mutex
	runs  int
	err   error
	block chan struct{}
}

func (j *countingJob) Run(ctx context.Context) error {
	j.mu.Lock()
	j.runs++
	j.mu.Unlock()
	if j.block != nil {
		select {
		case <-j.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return j.err
}

func (j *countingJob) count() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.runs
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSchedulerRunsImmediatelyAndOnTick(t *testing.T) {
	job := &countingJob{}
	sched := New(job, testLogger())
	sched.SetTickInterval(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}

	if got := job.count(); got < 2 {
		t.Errorf("job ran %d times, want at least an immediate run plus one tick", got)
	}
}

func TestSchedulerKeepsRunningAfterFailure(t *testing.T) {
	job := &countingJob{err: errors.New("cycle failed")}
	sched := New(job, testLogger())
	sched.SetTickInterval(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	sched.Run(ctx)

	if got := job.count(); got < 2 {
		t.Errorf("job ran %d times, want retries after a failed cycle", got)
	}
}

func TestSchedulerStopsMidCycleOnCancel(t *testing.T) {
	job := &countingJob{block: make(chan struct{})}
	sched := New(job, testLogger())
	sched.SetTickInterval(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop when cancelled mid-cycle")
	}
}
