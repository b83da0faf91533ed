package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/target/marketplace-console/config"
	"github.com/target/marketplace-console/internal/migrate"
)

const applicationName = "marketplace-console"

// DatabaseConfig contains configuration for database connections.
type DatabaseConfig struct {
	DBConfig    config.DBConfig
	RedisConfig config.RedisConfig
	Logger      *slog.Logger
}

func (c DatabaseConfig) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// ConnectDB opens the ledger database through pgx. It returns nil, nil when Postgres is disabled.
func ConnectDB(cfg DatabaseConfig) (*sql.DB, error) {
	dbCfg := cfg.DBConfig
	if !dbCfg.Enabled {
		cfg.logger().Info("postgres disabled; workflow ledger kept in memory")
		return nil, nil //nolint:nilnil // disabled is not an error
	}

	connCfg, err := pgx.ParseConfig(postgresURL(dbCfg))
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	if dbCfg.ConnectTimeout <= 0 {
		dbCfg.ConnectTimeout = defaultDialTimeout
	}
	connCfg.ConnectTimeout = dbCfg.ConnectTimeout
	connCfg.RuntimeParams["application_name"] = applicationName

	db := stdlib.OpenDB(*connCfg)
	db.SetMaxOpenConns(dbCfg.MaxOpenConns)
	db.SetMaxIdleConns(dbCfg.MaxIdleConns)
	db.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), dbCfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("ping postgres at %s: %w", connCfg.Host, err), db.Close())
	}

	cfg.logger().Info("postgres connected",
		"host", dbCfg.Host,
		"database", dbCfg.Name,
		"max_open_conns", dbCfg.MaxOpenConns,
	)
	return db, nil
}

// postgresURL builds the connection string; url.URL escapes credentials.
func postgresURL(c config.DBConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// RunMigrations applies the embedded ledger migrations. A nil db is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if db == nil {
		return nil
	}
	if err := migrate.Run(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if logger != nil {
		logger.InfoContext(ctx, "ledger migrations up to date")
	}
	return nil
}
