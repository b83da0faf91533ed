// Package testutil provides database, Redis and fixture helpers for marketplace-console tests.
package testutil

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/jackc/pgx/v5/stdlib" // "pgx" driver for database/sql
	"github.com/redis/go-redis/v9"

	"github.com/target/marketplace-console/internal/migrate"
)

// TestingTB is the subset of *testing.T and *testing.B the helpers need.
type TestingTB interface {
	Helper()
	Skip(args ...any)
	Skipf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
}

// TestDBConfig is read from TEST_DB_*. The default port matches the docker-compose test
// profile; CI sets TEST_DB_PORT=5432.
type TestDBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     string `env:"PORT"     envDefault:"55432"`
	User     string `env:"USER"     envDefault:"marketplace"`
	Password string `env:"PASSWORD" envDefault:"marketplace"`
	DBName   string `env:"NAME"     envDefault:"marketplace_console"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"`
}

// TestRedisConfig is read from TEST_REDIS_*.
type TestRedisConfig struct {
	Addr string `env:"ADDR" envDefault:"localhost:56379"`
	DB   int    `env:"DB"   envDefault:"1"`
}

// infraRequirements turns "skip when unreachable" into "fail when unreachable".
type infraRequirements struct {
	All   bool `env:"TEST_REQUIRE_INFRA"`
	DB    bool `env:"TEST_REQUIRE_DB"`
	Redis bool `env:"TEST_REQUIRE_REDIS"`
}

func requirements() infraRequirements {
	r, err := env.ParseAs[infraRequirements]()
	if err != nil {
		return infraRequirements{}
	}
	return r
}

// DefaultTestDBConfig returns the TEST_DB_* settings.
func DefaultTestDBConfig() TestDBConfig {
	cfg, err := env.ParseAsWithOptions[TestDBConfig](env.Options{Prefix: "TEST_DB_"})
	if err != nil {
		return TestDBConfig{Host: "localhost", Port: "55432", User: "marketplace",
			Password: "marketplace", DBName: "marketplace_console", SSLMode: "disable"}
	}
	return cfg
}

// DSN renders the config as a postgres URL, optionally pinned to a schema.
func (c TestDBConfig) DSN(schema string) string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	q := url.Values{"sslmode": {sslMode}}
	if schema != "" {
		q.Set("search_path", schema+",public")
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// SkipIfNoTestDB skips t when Postgres is unreachable, or fails it when TEST_REQUIRE_DB is set.
func SkipIfNoTestDB(t TestingTB) {
	t.Helper()
	err := probeDB(DefaultTestDBConfig().DSN(""))
	if err == nil {
		return
	}
	if r := requirements(); r.DB || r.All {
		t.Fatal("test database not available:", err)
	}
	t.Skip("test database not available:", err)
}

func probeDB(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

// SetupTestDB returns a connection scoped to a throwaway schema with the ledger migrations
// applied. The schema is dropped on cleanup.
func SetupTestDB(t TestingTB) *sql.DB {
	t.Helper()
	SkipIfNoTestDB(t)

	cfg := DefaultTestDBConfig()
	schema := "t_" + randomHex(4)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin, err := sql.Open("pgx", cfg.DSN(""))
	if err != nil {
		t.Fatal("open admin connection:", err)
	}
	if _, err := admin.ExecContext(ctx, "CREATE SCHEMA "+schema); err != nil {
		closeQuietly(t, admin)
		t.Fatalf("create schema %s: %v", schema, err)
	}

	db, err := sql.Open("pgx", cfg.DSN(schema))
	if err != nil {
		closeQuietly(t, admin)
		t.Fatal("open schema connection:", err)
	}

	onCleanup(t, func() {
		closeQuietly(t, db)
		dropCtx, dropCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dropCancel()
		if _, err := admin.ExecContext(dropCtx, "DROP SCHEMA IF EXISTS "+schema+" CASCADE"); err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
		closeQuietly(t, admin)
	})

	if err := migrate.Run(ctx, db); err != nil {
		t.Fatal("run migrations:", err)
	}
	return db
}

// SetupTestRedis returns a client on the TEST_REDIS_DB index, flushed before use. It skips when
// Redis is unreachable unless TEST_REQUIRE_REDIS is set.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	cfg, err := env.ParseAsWithOptions[TestRedisConfig](env.Options{Prefix: "TEST_REDIS_"})
	if err != nil {
		t.Fatal("parse TEST_REDIS_* settings:", err)
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, DB: cfg.DB})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		closeQuietly(t, client)
		if r := requirements(); r.Redis || r.All {
			t.Fatalf("redis not available at %s: %v", cfg.Addr, err)
		}
		t.Skipf("redis not available at %s: %v", cfg.Addr, err)
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Logf("flush redis db %d: %v", cfg.DB, err)
	}
	onCleanup(t, func() { closeQuietly(t, client) })
	return client
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func onCleanup(t TestingTB, fn func()) {
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(fn)
		return
	}
	t.Logf("%T has no Cleanup; resources live until exit", t)
}

func closeQuietly(t TestingTB, c interface{ Close() error }) {
	if err := c.Close(); err != nil {
		t.Logf("close %T: %v", c, err)
	}
}

// FixedTimeFunc returns a clock stuck at t.
func FixedTimeFunc(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// TestTime is the reference instant used across fixtures.
func TestTime() time.Time {
	return time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
}

// StringPtr returns &s.
func StringPtr(s string) *string { return &s }
