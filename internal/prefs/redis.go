package prefs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ledger-assistant/internal/core"
	"ledger-assistant/internal/i18n"
)

// RedisStore keeps preferences in Redis under "lang:<mobile>" with no expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Dial connects to addr and pings it.
func Dial(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("prefs: ping redis: %w", err)
	}
	return NewRedisStore(client), nil
}

func (r *RedisStore) Language(ctx context.Context, mobile string) (i18n.Lang, error) {
	raw, err := r.client.Get(ctx, key(mobile)).Result()
	if errors.Is(err, redis.Nil) {
		return "", core.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("prefs: get %s: %w", key(mobile), err)
	}
	return decode(mobile, raw)
}

func (r *RedisStore) SetLanguage(ctx context.Context, mobile string, lang i18n.Lang) error {
	if !lang.Valid() {
		return fmt.Errorf("prefs: unsupported language %q: %w", lang, core.ErrInvalidInput)
	}
	if err := r.client.Set(ctx, key(mobile), string(lang), 0).Err(); err != nil {
		return fmt.Errorf("prefs: set %s: %w", key(mobile), err)
	}
	return nil
}

// Close releases the client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
