package worker

import (
	"DMR_Link/internal/service"
	"context"
	"log"
	"time"
)

// finalSweepTimeout bounds the sweep run after ctx is cancelled.
const finalSweepTimeout = 30 * time.Second

// Sweeper runs one revocation pass.
type Sweeper interface {
	Sweep(ctx context.Context) (service.SweepResult, error)
}

// RunSweeper sweeps once at start, every interval, on every trigger and once
// more after ctx is done. interval <= 0 disables the ticker.
func RunSweeper(ctx context.Context, s Sweeper, interval time.Duration, trigger <-chan struct{}) {
	sweepOnce(ctx, s, "startup")

	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			final, cancel := context.WithTimeout(context.Background(), finalSweepTimeout)
			sweepOnce(final, s, "shutdown")
			cancel()
			return
		case <-tick:
			sweepOnce(ctx, s, "interval")
		case <-trigger:
			sweepOnce(ctx, s, "expiry event")
		}
	}
}

// Notify queues a sweep on trigger without blocking. Pending triggers coalesce.
func Notify(trigger chan<- struct{}) {
	select {
	case trigger <- struct{}{}:
	default:
	}
}

func sweepOnce(ctx context.Context, s Sweeper, reason string) {
	start := time.Now()
	result, err := s.Sweep(ctx)
	if err != nil {
		log.Printf("sweep (%s) failed: %v", reason, err)
		return
	}
	if result.Skipped || result.Checked == 0 {
		return
	}
	log.Printf("sweep (%s): checked=%d revoked=%d failed=%d kept=%d in %s",
		reason, result.Checked, result.Revoked, result.Failed, result.Kept, time.Since(start).Round(time.Millisecond))
}
