package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevoker remembers tokens that were logged out before they expired.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "blacklist:access:" + hex.EncodeToString(sum[:])
}

// RedisTokenBlacklist stores revoked tokens as keys that expire together
// with the token, so Redis does the cleanup.
type RedisTokenBlacklist struct {
	Client *redis.Client
}

// NewTokenBlacklist creates a new Redis-backed token blacklist
func NewTokenBlacklist(ctx context.Context, redisURL string) (*RedisTokenBlacklist, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisTokenBlacklist{Client: client}, nil
}

func (tb *RedisTokenBlacklist) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := tb.Client.Set(ctx, blacklistKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token in Redis: %w", err)
	}
	return nil
}

func (tb *RedisTokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := tb.Client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return n > 0, nil
}

func (tb *RedisTokenBlacklist) Close() error {
	return tb.Client.Close()
}

// MemoryTokenBlacklist is the process-local TokenRevoker used when no Redis
// is configured. Expired entries are dropped lazily on lookup.
type MemoryTokenBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryTokenBlacklist(now func() time.Time) *MemoryTokenBlacklist {
	if now == nil {
		now = time.Now
	}
	return &MemoryTokenBlacklist{entries: make(map[string]time.Time), now: now}
}

func (tb *MemoryTokenBlacklist) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	if !expiresAt.After(tb.now()) {
		return nil
	}
	tb.entries[blacklistKey(token)] = expiresAt
	return nil
}

func (tb *MemoryTokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	key := blacklistKey(token)
	expiresAt, ok := tb.entries[key]
	if !ok {
		return false, nil
	}
	if !expiresAt.After(tb.now()) {
		delete(tb.entries, key)
		return false, nil
	}
	return true, nil
}
