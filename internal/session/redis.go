// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is an scs session store backed by Redis.
// Session entries expire in Redis together with the session.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisStoreOptions configures the Redis store.
type RedisStoreOptions struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	// Prefix is prepended to all session tokens
	Prefix string

	// PoolSize is the maximum number of connections (0 = use default)
	PoolSize int

	// ConnectTimeout is the timeout for establishing a connection
	ConnectTimeout time.Duration

	// ReadTimeout is the timeout for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for write operations
	WriteTimeout time.Duration
}

// DefaultRedisStoreOptions returns sensible defaults.
func DefaultRedisStoreOptions() RedisStoreOptions {
	return RedisStoreOptions{
		Prefix:         "staffreg:session:",
		PoolSize:       10,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    3 * time.Second,
		WriteTimeout:   3 * time.Second,
	}
}

// NewRedisStore connects to Redis and returns a session store.
func NewRedisStore(opts RedisStoreOptions) (*RedisStore, error) {
	if opts.URL == "" {
		return nil, errors.New("redis URL is required")
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	if opts.PoolSize > 0 {
		redisOpts.PoolSize = opts.PoolSize
	}
	if opts.ConnectTimeout > 0 {
		redisOpts.DialTimeout = opts.ConnectTimeout
	}
	if opts.ReadTimeout > 0 {
		redisOpts.ReadTimeout = opts.ReadTimeout
	}
	if opts.WriteTimeout > 0 {
		redisOpts.WriteTimeout = opts.WriteTimeout
	}

	client := redis.NewClient(redisOpts)

	connectTimeout := opts.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return NewRedisStoreWithClient(client, opts.Prefix), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// key adds the store prefix to a session token.
func (s *RedisStore) key(token string) string {
	return s.prefix + token
}

// FindCtx returns the data for a session token.
func (s *RedisStore) FindCtx(ctx context.Context, token string) ([]byte, bool, error) {
	b, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// CommitCtx stores the session data until expiry.
func (s *RedisStore) CommitCtx(ctx context.Context, token string, b []byte, expiry time.Time) error {
	ttl := time.Until(expiry)
	if ttl <= 0 {
		return s.DeleteCtx(ctx, token)
	}
	return s.client.Set(ctx, s.key(token), b, ttl).Err()
}

// DeleteCtx removes a session.
func (s *RedisStore) DeleteCtx(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

// Find implements scs.Store.
func (s *RedisStore) Find(token string) ([]byte, bool, error) {
	return s.FindCtx(context.Background(), token)
}

// Commit implements scs.Store.
func (s *RedisStore) Commit(token string, b []byte, expiry time.Time) error {
	return s.CommitCtx(context.Background(), token, b, expiry)
}

// Delete implements scs.Store.
func (s *RedisStore) Delete(token string) error {
	return s.DeleteCtx(context.Background(), token)
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
