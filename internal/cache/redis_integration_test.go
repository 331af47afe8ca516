//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRedisRepository(t *testing.T) {
	ctx := context.Background()

	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		redisC.Terminate(ctx)
	})

	endpoint, err := redisC.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	defer client.Close()

	repo := NewRedisRepository(client, "geocode")

	_, ok, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, "parramatta", `{"latitude":-33.815,"longitude":151.0011}`, time.Minute))

	value, ok, err := repo.Get(ctx, "parramatta")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"latitude":-33.815,"longitude":151.0011}`, value)

	raw, err := client.Get(ctx, "geocode:parramatta").Result()
	require.NoError(t, err)
	assert.Equal(t, value, raw, "keys are namespaced by prefix")

	ttl, err := client.TTL(ctx, "geocode:parramatta").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
