package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/target/marketplace-console/config"
)

const defaultDialTimeout = 5 * time.Second

// ConnectRedis dials Redis in the configured topology and pings it.
//
//nolint:ireturn // standalone, sentinel and cluster clients share redis.UniversalClient
func ConnectRedis(cfg DatabaseConfig) (redis.UniversalClient, error) {
	opts, err := redisOptions(cfg.RedisConfig)
	if err != nil {
		return nil, err
	}
	client := redis.NewUniversalClient(opts)

	timeout := cfg.RedisConfig.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Join(fmt.Errorf("ping redis: %w", err), closeRedis(client))
	}

	cfg.logger().Info("redis connected",
		"topology", cfg.RedisConfig.Topology(),
		"addrs", strings.Join(opts.Addrs, ","),
	)
	return client, nil
}

// redisOptions maps RedisConfig onto UniversalOptions. A redis:// URL supplies the address,
// credentials, database and TLS settings; explicit config values override the URL's.
func redisOptions(c config.RedisConfig) (*redis.UniversalOptions, error) {
	opts := &redis.UniversalOptions{
		Username:    c.Username,
		Password:    c.Password,
		DB:          c.DB,
		DialTimeout: c.DialTimeout,
	}

	if isRedisURL(c.URI) {
		parsed, err := redis.ParseURL(c.URI)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URI: %w", err)
		}
		opts.Addrs = []string{parsed.Addr}
		opts.TLSConfig = parsed.TLSConfig
		if opts.Username == "" {
			opts.Username = parsed.Username
		}
		if opts.Password == "" {
			opts.Password = parsed.Password
		}
		if opts.DB == 0 {
			opts.DB = parsed.DB
		}
	} else if c.URI != "" {
		opts.Addrs = []string{c.URI}
	}

	switch c.Topology() {
	case config.RedisCluster:
		if len(c.ClusterNodes) > 0 {
			opts.Addrs = c.ClusterNodes
		}
		if len(opts.Addrs) == 0 {
			return nil, errors.New("redis cluster needs REDIS_CLUSTER_NODES or REDIS_URI")
		}
		// Cluster mode has a single database.
		opts.DB = 0
		opts.IsClusterMode = true
	case config.RedisSentinel:
		if len(c.SentinelNodes) == 0 {
			return nil, errors.New("redis sentinel needs REDIS_SENTINEL_NODES")
		}
		if c.SentinelMasterName == "" {
			return nil, errors.New("redis sentinel needs REDIS_SENTINEL_MASTER_NAME")
		}
		opts.Addrs = c.SentinelNodes
		opts.MasterName = c.SentinelMasterName
		opts.SentinelPassword = c.SentinelPassword
	default:
		if len(opts.Addrs) == 0 {
			return nil, errors.New("redis needs REDIS_URI")
		}
	}
	return opts, nil
}

func isRedisURL(v string) bool {
	return strings.HasPrefix(v, "redis://") || strings.HasPrefix(v, "rediss://")
}

// closeRedis is shared by startup failure paths.
func closeRedis(client redis.UniversalClient) error {
	if client == nil {
		return nil
	}
	return client.Close()
}
