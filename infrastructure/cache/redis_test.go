package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisCacheWithClient(client, time.Minute, "")
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, ok, err := c.Get(ctx, "entry:bm:1")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, c.Ping(ctx))
	assert.Equal(t, "redis", c.Name())
}

func TestRedisCache_Prefix(t *testing.T) {
	c := NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), 0, "")
	defer c.Close()
	assert.Equal(t, "ordbok:entry:bm:1", c.key("entry:bm:1"))

	custom := NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), 0, "test:")
	defer custom.Close()
	assert.Equal(t, "test:k", custom.key("k"))
}

// Runs against a real server when REDIS_TEST_ADDR is set
func TestRedisCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	ctx := context.Background()
	c := NewRedisCache(RedisOptions{Addr: addr, TTL: time.Minute, Prefix: "ordbok-test:"})
	defer c.Close()
	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.Clear(ctx))

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	value, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), value)

	require.NoError(t, c.Delete(ctx, "k"))
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
