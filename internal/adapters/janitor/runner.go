// Package janitor runs the workflow ledger purge loop.
package janitor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/target/marketplace-console/config"
	"github.com/target/marketplace-console/internal/data"
	"github.com/target/marketplace-console/internal/observability/statsd"
	"github.com/target/marketplace-console/internal/ports"
	"github.com/target/marketplace-console/internal/service"
)

// Runner wraps a LedgerJanitor with its wiring.
type Runner struct {
	janitor *service.LedgerJanitor
	logger  *slog.Logger
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	// DB backs the ledger when Ledger is nil.
	DB     *sql.DB
	Config config.JanitorConfig
	Logger *slog.Logger

	// Ledger overrides the Postgres ledger; the in-memory ledger is passed here when DB is disabled.
	Ledger  ports.ActionLedger
	Metrics statsd.Sink
}

// NewRunner validates options and builds the janitor service.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	ledger := opts.Ledger
	if ledger == nil {
		if opts.DB == nil {
			return nil, errors.New("database connection or ledger is required")
		}
		ledger = data.NewLedgerRepo(opts.DB, data.LedgerOptions{})
	}

	j, err := service.NewLedgerJanitor(service.LedgerJanitorOptions{
		Ledger:  ledger,
		Config:  opts.Config,
		Logger:  opts.Logger,
		Metrics: opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("wire ledger janitor: %w", err)
	}
	return &Runner{janitor: j, logger: opts.Logger}, nil
}

// Run blocks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting ledger janitor runner")
	return r.janitor.Run(ctx)
}
