package config

import (
	"strings"
	"time"
)

// DBConfig locates the Postgres database that holds the workflow action ledger.
type DBConfig struct {
	// Enabled switches the ledger from process memory to Postgres.
	Enabled  bool   `env:"ENABLED"  envDefault:"false"`
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"marketplace"`
	Password string `env:"PASSWORD" envDefault:"marketplace"`
	Name     string `env:"NAME"     envDefault:"marketplace_console"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"`

	MaxOpenConns    int           `env:"MAX_OPEN_CONNS"    envDefault:"10"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS"    envDefault:"2"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT"   envDefault:"5s"`

	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// Sanitize keeps pool settings usable.
func (c *DBConfig) Sanitize() {
	c.Host = strings.TrimSpace(c.Host)
	c.SSLMode = strings.TrimSpace(c.SSLMode)
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 10
	}
	if c.MaxIdleConns < 0 || c.MaxIdleConns > c.MaxOpenConns {
		c.MaxIdleConns = min(2, c.MaxOpenConns)
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = 5 * time.Minute
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 5 * time.Second
	}
}

// RedisTopology selects how the Redis client finds its servers.
type RedisTopology string

const (
	RedisStandalone RedisTopology = "standalone"
	RedisSentinel   RedisTopology = "sentinel"
	RedisCluster    RedisTopology = "cluster"
)

// RedisConfig holds the Redis settings shared by sessions and the search cache.
type RedisConfig struct {
	// URI is host:port or a redis:// / rediss:// URL.
	URI      string `env:"URI"      envDefault:"localhost:6379"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"       envDefault:"0"`

	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"`

	UseCluster   bool     `env:"USE_CLUSTER"   envDefault:"false"`
	ClusterNodes []string `env:"CLUSTER_NODES"`

	DialTimeout time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
}

// Topology reports the configured deployment shape. Cluster wins over sentinel.
func (c RedisConfig) Topology() RedisTopology {
	switch {
	case c.UseCluster:
		return RedisCluster
	case c.UseSentinel:
		return RedisSentinel
	default:
		return RedisStandalone
	}
}

// Sanitize trims node lists and defaults the dial timeout.
func (c *RedisConfig) Sanitize() {
	c.URI = strings.TrimSpace(c.URI)
	c.SentinelNodes = compactNodes(c.SentinelNodes)
	c.ClusterNodes = compactNodes(c.ClusterNodes)
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
}

func compactNodes(nodes []string) []string {
	out := nodes[:0]
	for _, n := range nodes {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
