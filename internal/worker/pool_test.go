package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type stubResult struct {
	seq int
	err error
}

func (r *stubResult) Err() error { return r.err }
func (r *stubResult) Seq() int   { return r.seq }

type stubJob struct {
	seq       int
	duration  time.Duration
	shouldErr bool
	executed  *int32
}

func (j *stubJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &stubResult{seq: j.seq, err: ctx.Err()}
		}
	}
	if j.shouldErr {
		return &stubResult{seq: j.seq, err: errors.New("job error")}
	}
	return &stubResult{seq: j.seq}
}

func TestNewPoolClampsWorkers(t *testing.T) {
	if p := NewPool(5); p.workers != 5 {
		t.Errorf("workers = %d, want 5", p.workers)
	}
	if p := NewPool(0); p.workers != 1 {
		t.Errorf("workers = %d, want 1 for zero input", p.workers)
	}
	if p := NewPool(-1); p.workers != 1 {
		t.Errorf("workers = %d, want 1 for negative input", p.workers)
	}
}

func TestPoolExecutesAll(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	var executed int32
	count := 10
	for i := 0; i < count; i++ {
		pool.Submit(&stubJob{seq: i, executed: &executed})
	}

	results := pool.Wait()
	if len(results) != count {
		t.Errorf("len(results) = %d, want %d", len(results), count)
	}
	if atomic.LoadInt32(&executed) != int32(count) {
		t.Errorf("executed = %d, want %d", executed, count)
	}
}

// Results must come back in submission order regardless of how long
// each job took.
func TestWaitOrdersBySequence(t *testing.T) {
	pool := NewPool(4)
	pool.Start()

	durations := []time.Duration{40, 5, 30, 1, 20} // milliseconds
	for i, d := range durations {
		pool.Submit(&stubJob{seq: i, duration: d * time.Millisecond})
	}

	results := pool.Wait()
	if len(results) != len(durations) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(durations))
	}
	for i, res := range results {
		if res.Seq() != i {
			t.Fatalf("results[%d].Seq() = %d, want %d", i, res.Seq(), i)
		}
	}
}

func TestPoolPropagatesErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&stubJob{seq: 0, shouldErr: true})
	pool.Submit(&stubJob{seq: 1})

	results := pool.Wait()
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	failed := 0
	for _, res := range results {
		if res.Err() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
}

func TestSubmitAfterShutdownDoesNotBlock(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		pool.Submit(&stubJob{seq: 0})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit after shutdown blocked")
	}
}

// A caller may submit far more jobs than there are workers before it
// ever drains; nothing in the pool is allowed to block on that.
func TestLargeBatchBeforeWait(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	count := 200
	var executed int32
	for i := 0; i < count; i++ {
		pool.Submit(&stubJob{seq: i, executed: &executed})
	}

	results := pool.Wait()
	if len(results) != count {
		t.Fatalf("len(results) = %d, want %d", len(results), count)
	}
	if atomic.LoadInt32(&executed) != int32(count) {
		t.Errorf("executed = %d, want %d", executed, count)
	}
}

func TestShutdownCancelsInFlight(t *testing.T) {
	pool := NewPool(1)
	pool.Start()

	started := make(chan struct{})
	pool.Submit(&stubJob{seq: 0, duration: 5 * time.Second, executed: signalOnce(started)})
	<-started

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Shutdown did not return after cancelling the in-flight job")
	}

	results := pool.Wait()
	if len(results) != 1 || results[0].Err() == nil {
		t.Fatalf("cancelled job should report a context error, got %+v", results)
	}
}

// signalOnce returns a counter whose first increment closes ch.
func signalOnce(ch chan struct{}) *int32 {
	var n int32
	go func() {
		for atomic.LoadInt32(&n) == 0 {
			time.Sleep(time.Millisecond)
		}
		close(ch)
	}()
	return &n
}
