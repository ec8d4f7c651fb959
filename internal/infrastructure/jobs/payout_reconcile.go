package jobs

import (
	"context"
	"log"
	"time"
)

// payoutReconciler resolves withdrawals stuck in PROCESSING
type payoutReconciler interface {
	ReconcileProcessing(ctx context.Context) error
}

// PayoutReconcileJob periodically re-queries the payout provider for
// withdrawals that stayed in PROCESSING past the configured threshold.
type PayoutReconcileJob struct {
	reconciler payoutReconciler
	interval   time.Duration
	stop       chan struct{}
}

func NewPayoutReconcileJob(reconciler payoutReconciler, interval time.Duration) *PayoutReconcileJob {
	return &PayoutReconcileJob{
		reconciler: reconciler,
		interval:   interval,
		stop:       make(chan struct{}),
	}
}

func (j *PayoutReconcileJob) Start(ctx context.Context) {
	log.Println("🕐 Starting payout reconcile job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Payout reconcile job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Payout reconcile job stopped")
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *PayoutReconcileJob) Stop() {
	close(j.stop)
}

func (j *PayoutReconcileJob) runOnce(ctx context.Context) {
	if err := j.reconciler.ReconcileProcessing(ctx); err != nil {
		log.Printf("❌ Error reconciling stuck payouts: %v", err)
	}
}
