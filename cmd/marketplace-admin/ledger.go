package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/target/marketplace-console/internal/data"
	"github.com/target/marketplace-console/internal/domain/workflow"
	"github.com/target/marketplace-console/internal/migrate"
	"github.com/target/marketplace-console/internal/ports"
)

const defaultMigrateTimeout = 2 * time.Minute

func runMigrate(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Out)
	timeout := fs.Duration("timeout", defaultMigrateTimeout, "give up after this long")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := connectLedgerDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB(cmdCtx, db)

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, *timeout)
	defer cancel()
	if err := migrate.Run(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return writeln(cmdCtx.Out, "migrations applied")
}

func runMigrateStatus(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("migrate-status", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Out)
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := connectLedgerDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB(cmdCtx, db)

	statuses, err := migrate.List(cmdCtx.Ctx, db)
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	return printMigrationStatus(cmdCtx, statuses)
}

func printMigrationStatus(cmdCtx *commandContext, statuses []migrate.Status) error {
	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "VERSION\tAPPLIED\t"); err != nil {
		return err
	}
	for _, s := range statuses {
		applied := "pending"
		if s.AppliedAt != nil {
			applied = s.AppliedAt.UTC().Format(time.RFC3339)
		}
		if err := writef(tw, "%s\t%s\t\n", s.Version, applied); err != nil {
			return err
		}
	}
	return tw.Flush()
}

type ledgerListFlags struct {
	jobID  string
	limit  int
	asJSON bool
}

func runLedger(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("ledger", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Out)
	var f ledgerListFlags
	fs.StringVar(&f.jobID, "job", "", "only show actions for this job")
	fs.IntVar(&f.limit, "limit", 50, "maximum entries to show")
	fs.BoolVar(&f.asJSON, "json", false, "print entries as JSON lines")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := connectLedgerDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB(cmdCtx, db)

	return listLedger(cmdCtx, data.NewLedgerRepo(db, data.LedgerOptions{}), f)
}

func listLedger(cmdCtx *commandContext, ledger ports.ActionLedger, f ledgerListFlags) error {
	entries, err := ledger.ListRecent(cmdCtx.Ctx, workflow.LedgerFilter{JobID: f.jobID, Limit: f.limit})
	if err != nil {
		return fmt.Errorf("list ledger: %w", err)
	}

	if f.asJSON {
		enc := json.NewEncoder(cmdCtx.Out)
		for _, e := range entries {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "CREATED\tJOB\tACTION\tACTOR\tSTATUS\tERROR\t"); err != nil {
		return err
	}
	for _, e := range entries {
		errMsg := ""
		if e.Error != nil {
			errMsg = *e.Error
		}
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			e.CreatedAt.UTC().Format(time.RFC3339), e.JobID, e.Action, e.ActorID, e.Status, errMsg); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func runLedgerPurge(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("ledger-purge", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Out)
	olderThan := fs.Duration("older-than", cmdCtx.Config.Janitor.Retention, "delete entries created before now minus this")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := connectLedgerDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB(cmdCtx, db)

	return purgeLedger(cmdCtx, data.NewLedgerRepo(db, data.LedgerOptions{}), *olderThan, *yes, time.Now())
}

func purgeLedger(
	cmdCtx *commandContext,
	ledger ports.ActionLedger,
	olderThan time.Duration,
	yes bool,
	now time.Time,
) error {
	if olderThan <= 0 {
		return fmt.Errorf("-older-than must be positive, got %s", olderThan)
	}
	cutoff := now.Add(-olderThan)
	if err := confirm(cmdCtx, yes,
		fmt.Sprintf("Delete ledger entries created before %s?", cutoff.UTC().Format(time.RFC3339))); err != nil {
		return err
	}
	n, err := ledger.PurgeOlderThan(cmdCtx.Ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge ledger: %w", err)
	}
	return writef(cmdCtx.Out, "deleted %d ledger entries\n", n)
}
