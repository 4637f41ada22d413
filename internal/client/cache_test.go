package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"lpt-event/internal/client"
)

func TestMemoryCache(t *testing.T) {
	cache := client.NewMemoryCache()
	ctx := context.Background()

	data, err := cache.Get(ctx, client.EventsKey)
	require.NoError(t, err)
	assert.Nil(t, data, "expected a miss on an empty cache")

	require.NoError(t, cache.Set(ctx, client.EventsKey, []byte(`[]`), 0))
	data, err = cache.Get(ctx, client.EventsKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)

	require.NoError(t, cache.Invalidate(ctx, client.EventsKey))
	data, err = cache.Get(ctx, client.EventsKey)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := client.NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, client.EventKey(1), []byte(`{}`), 20*time.Millisecond))

	data, err := cache.Get(ctx, client.EventKey(1))
	require.NoError(t, err)
	assert.NotNil(t, data)

	time.Sleep(40 * time.Millisecond)

	data, err = cache.Get(ctx, client.EventKey(1))
	require.NoError(t, err)
	assert.Nil(t, data, "expired entries must read as misses")
}

func TestMemoryCacheInvalidateMany(t *testing.T) {
	cache := client.NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, client.EventsKey, []byte(`[]`), 0))
	require.NoError(t, cache.Set(ctx, client.EventKey(1), []byte(`{}`), 0))

	require.NoError(t, cache.Invalidate(ctx, client.EventsKey, client.EventKey(1)))

	data, _ := cache.Get(ctx, client.EventsKey)
	assert.Nil(t, data)
	data, _ = cache.Get(ctx, client.EventKey(1))
	assert.Nil(t, data)
}

// TestRedisCacheIntegration exercises the Redis backend against a real
// Redis container.
func TestRedisCacheIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Redis integration test in short mode")
	}

	ctx := context.Background()
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:latest",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}
	defer redisContainer.Terminate(ctx)

	host, err := redisContainer.Host(ctx)
	require.NoError(t, err)
	port, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	redisClient := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})
	defer redisClient.Close()

	cache := client.NewRedisCache(redisClient)

	data, err := cache.Get(ctx, client.EventsKey)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, cache.Set(ctx, client.EventsKey, []byte(`[{"id":1}]`), time.Minute))
	data, err = cache.Get(ctx, client.EventsKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":1}]`), data)

	require.NoError(t, cache.Invalidate(ctx, client.EventsKey, client.EventKey(1)))
	data, err = cache.Get(ctx, client.EventsKey)
	require.NoError(t, err)
	assert.Nil(t, data)
}
