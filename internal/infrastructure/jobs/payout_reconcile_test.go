package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type stubReconciler struct {
	calls atomic.Int64
	err   error
}

func (s *stubReconciler) ReconcileProcessing(context.Context) error {
	s.calls.Add(1)
	return s.err
}

func TestPayoutReconcileJob_TicksUntilStopped(t *testing.T) {
	reconciler := &stubReconciler{}
	job := NewPayoutReconcileJob(reconciler, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for reconciler.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("reconciler was not invoked in time")
		case <-time.After(time.Millisecond):
		}
	}

	job.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not stop")
	}
}

func TestPayoutReconcileJob_StopsOnContextCancel(t *testing.T) {
	job := NewPayoutReconcileJob(&stubReconciler{}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not stop on context cancel")
	}
}

func TestPayoutReconcileJob_KeepsRunningAfterError(t *testing.T) {
	reconciler := &stubReconciler{err: errors.New("provider down")}
	job := NewPayoutReconcileJob(reconciler, 5*time.Millisecond)

	go job.Start(context.Background())
	defer job.Stop()

	deadline := time.After(2 * time.Second)
	for reconciler.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("job stopped ticking after an error")
		case <-time.After(time.Millisecond):
		}
	}
}
