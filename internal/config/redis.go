package config

// This file defines the Redis client constructor.  Redis is only needed when
// SESSION_BACKEND=redis, where it holds the server-side half of each login
// session.  Unlike the cookie and jwt backends, a Redis outage there means
// nobody can stay logged in, so a failed ping is reported to the caller
// instead of being swallowed.

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisPingTimeout bounds the startup connectivity check.
const redisPingTimeout = 2 * time.Second

// NewRedisClient builds a client from a redis:// or rediss:// URL and pings
// the server.  The URL carries host, port, password, database number and TLS
// selection, e.g. redis://:secret@cache:6379/1.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}
