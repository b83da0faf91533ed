package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/target/marketplace-console/config"
	"github.com/target/marketplace-console/internal/observability/metrics"
	"github.com/target/marketplace-console/internal/observability/statsd"
	"github.com/target/marketplace-console/internal/ports"
)

// LedgerJanitorOptions groups dependencies for LedgerJanitor.
type LedgerJanitorOptions struct {
	Ledger  ports.ActionLedger
	Config  config.JanitorConfig
	Logger  *slog.Logger
	Metrics statsd.Sink
	// Now is overridable in tests.
	Now func() time.Time
}

// LedgerJanitor deletes workflow ledger entries older than the retention window.
type LedgerJanitor struct {
	ledger  ports.ActionLedger
	config  config.JanitorConfig
	logger  *slog.Logger
	metrics statsd.Sink
	now     func() time.Time
}

// NewLedgerJanitor constructs a LedgerJanitor.
func NewLedgerJanitor(opts LedgerJanitorOptions) (*LedgerJanitor, error) {
	if opts.Ledger == nil {
		return nil, errors.New("action ledger is required")
	}
	if opts.Config.Interval <= 0 {
		return nil, errors.New("janitor interval must be positive")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sink := opts.Metrics
	if sink == nil {
		sink = statsd.Discard
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &LedgerJanitor{
		ledger:  opts.Ledger,
		config:  opts.Config,
		logger:  logger.With("component", "ledger_janitor"),
		metrics: sink,
		now:     now,
	}, nil
}

// Run purges once after a short jitter, then on every interval until ctx is cancelled.
// Cancellation returns nil.
func (j *LedgerJanitor) Run(ctx context.Context) error {
	j.logger.InfoContext(ctx, "starting ledger janitor",
		"interval", j.config.Interval,
		"retention", j.config.Retention,
	)

	j.waitWithJitter(ctx)

	ticker := time.NewTicker(j.config.Interval)
	defer ticker.Stop()

	if _, err := j.PurgeOnce(ctx); err != nil && !isContextCancellation(err) {
		j.logger.ErrorContext(ctx, "initial ledger purge failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			j.logger.InfoContext(ctx, "ledger janitor stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if _, err := j.PurgeOnce(ctx); err != nil && !isContextCancellation(err) {
				j.logger.ErrorContext(ctx, "ledger purge failed", "error", err)
			}
		}
	}
}

// PurgeOnce removes entries created before now minus the retention window.
func (j *LedgerJanitor) PurgeOnce(ctx context.Context) (int64, error) {
	start := time.Now()
	cutoff := j.now().Add(-j.config.Retention)

	deleted, err := j.ledger.PurgeOlderThan(ctx, cutoff)
	metrics.EmitLedgerPurge(j.metrics, metrics.LedgerPurge{
		Deleted:  deleted,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return 0, fmt.Errorf("purge ledger before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	if deleted > 0 {
		j.logger.InfoContext(ctx, "purged ledger entries", "deleted", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}

// waitWithJitter sleeps up to a tenth of the interval so replicas don't purge in lockstep.
func (j *LedgerJanitor) waitWithJitter(ctx context.Context) {
	maxJitter := int64(j.config.Interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		j.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		return
	}
	jitter := time.Duration(int64(binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter))) // #nosec G115 - bounded by maxJitter

	t := time.NewTimer(jitter)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func isContextCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
