package caching

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"hotel_pos_backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	menuKeyPrefix = "hotelpos:menu:"
	opTimeout     = 500 * time.Millisecond
)

// RedisMenuCache keeps menu listings in Redis, one key per filter combination.
// Every Redis failure is logged and treated as a miss so the database stays
// the source of truth.
type RedisMenuCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisMenuCache builds the cache over an existing client.
func NewRedisMenuCache(client redis.UniversalClient, ttl time.Duration) *RedisMenuCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisMenuCache{client: client, ttl: ttl}
}

// NewRedisClient creates a client for addr. A redis:// URL is accepted too.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, err
		}
		if password != "" {
			opts.Password = password
		}
		return redis.NewClient(opts), nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), nil
}

func menuKey(key string) string {
	return menuKeyPrefix + key
}

// GetMenu returns the cached listing for key.
func (r *RedisMenuCache) GetMenu(key string) ([]models.MenuItem, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	data, err := r.client.Get(ctx, menuKey(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("menu cache read failed")
		}
		return nil, false
	}

	var items []models.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("menu cache entry is corrupt")
		return nil, false
	}
	return items, true
}

// SetMenu stores a listing under key for the configured TTL.
func (r *RedisMenuCache) SetMenu(key string, items []models.MenuItem) {
	data, err := json.Marshal(items)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("menu cache encode failed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := r.client.Set(ctx, menuKey(key), data, r.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("menu cache write failed")
	}
}

// InvalidateMenu drops every cached listing.
func (r *RedisMenuCache) InvalidateMenu() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*opTimeout)
	defer cancel()

	var keys []string
	iter := r.client.Scan(ctx, 0, menuKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("menu cache scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Int("keys", len(keys)).Msg("menu cache invalidation failed")
		return
	}
	log.Debug().Int("keys", len(keys)).Msg("menu cache invalidated")
}
