package caching

import (
	"testing"
	"time"

	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/internal/services"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ services.MenuCache = (*RedisMenuCache)(nil)

// unreachableClient points at a port nothing listens on.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRedisMenuCache_UnreachableServerIsAMiss(t *testing.T) {
	client := unreachableClient()
	defer client.Close()
	cache := NewRedisMenuCache(client, time.Minute)

	cache.SetMenu("category=:available=true", []models.MenuItem{{ID: 1, Name: "Masala Chai", Price: 20}})
	items, ok := cache.GetMenu("category=:available=true")
	assert.False(t, ok)
	assert.Nil(t, items)

	assert.NotPanics(t, cache.InvalidateMenu)
}

func TestNewRedisMenuCache_DefaultTTL(t *testing.T) {
	cache := NewRedisMenuCache(unreachableClient(), 0)
	assert.Equal(t, 5*time.Minute, cache.ttl)
	assert.Equal(t, "hotelpos:menu:category=Drinks", menuKey("category=Drinks"))
}

func TestNewRedisClient(t *testing.T) {
	client, err := NewRedisClient("redis://:secret@cache.internal:6380/2", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", client.Options().Addr)
	assert.Equal(t, "secret", client.Options().Password)
	assert.Equal(t, 2, client.Options().DB)

	client, err = NewRedisClient("localhost:6379", "pw", 3)
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", client.Options().Addr)
	assert.Equal(t, 3, client.Options().DB)

	_, err = NewRedisClient("redis://cache.internal:6380/notadb", "", 0)
	assert.Error(t, err)
}
