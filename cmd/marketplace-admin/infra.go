package main

import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/target/marketplace-console/internal/bootstrap"
	"github.com/target/marketplace-console/internal/marketplace"
)

var errAborted = errors.New("aborted")

// connectLedgerDB opens Postgres. Ledger commands have nothing to do without it.
func connectLedgerDB(cmdCtx *commandContext) (*sql.DB, error) {
	if !cmdCtx.Config.Postgres.Enabled {
		return nil, errors.New("postgres is disabled; set DB_ENABLED=true")
	}
	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	return db, nil
}

func closeDB(cmdCtx *commandContext, db *sql.DB) {
	if err := db.Close(); err != nil {
		cmdCtx.Logger.Warn("db close failed", "error", err)
	}
}

// newAdminClient calls the backend as the service account.
func newAdminClient(cmdCtx *commandContext) (*marketplace.Client, error) {
	token := cmdCtx.Config.Marketplace.ServiceAdminToken
	if token == "" {
		return nil, errors.New("MARKETPLACE_SERVICE_ADMIN_TOKEN is required")
	}
	return marketplace.New(marketplace.Options{
		BaseURL:   cmdCtx.Config.Marketplace.APIURL,
		Timeout:   cmdCtx.Config.Marketplace.Timeout,
		Sessions:  marketplace.StaticTokens{Admin: token},
		Logger:    cmdCtx.Logger,
		UserAgent: cmdCtx.Config.Marketplace.UserAgent + " (admin-cli)",
	})
}

// confirm asks a yes/no question unless yes is already set.
func confirm(cmdCtx *commandContext, yes bool, question string) error {
	if yes {
		return nil
	}
	if err := writef(cmdCtx.Out, "%s [y/N]: ", question); err != nil {
		return err
	}
	in := cmdCtx.In
	if in == nil {
		in = strings.NewReader("")
	}
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	default:
		return errAborted
	}
}
