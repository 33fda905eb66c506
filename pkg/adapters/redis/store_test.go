package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dennissergeev/exo-lightning-msci-project/internal/testutils"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/adapters/redis"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Contract(t *testing.T) {
	mr := miniredis.RunT(t)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client)
	ports.RunResultStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "scratch", testutils.NewResult(t, "scratch", 3)))

	labels, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, labels, "scratch")

	// miniredis time only drives key expiry
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "scratch")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)

	// index pruning compares against wall-clock time
	time.Sleep(1200 * time.Millisecond)

	labels, err = store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, labels)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "run01", testutils.NewResult(t, "run01", 2)))

	assert.True(t, mr.Exists("custom:app:run:run01"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:runs"), "Expected index with custom prefix to exist")
	assert.Equal(t, "redis://custom:app:run:run01", store.Location("run01"))

	list, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, list, "run01")
}

func TestRedisStore_LabelNamedLikeIndex(t *testing.T) {
	mr := miniredis.RunT(t)
	store := redis.NewFromClient(backend.NewClient(&backend.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "runs", testutils.NewResult(t, "runs", 2)))
	require.NoError(t, store.Save(ctx, "index", testutils.NewResult(t, "index", 2)))

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"runs", "index"}, list)
}

func TestRedisStore_CorruptArtifact(t *testing.T) {
	mr := miniredis.RunT(t)
	store := redis.NewFromClient(backend.NewClient(&backend.Options{Addr: mr.Addr()}))
	require.NoError(t, mr.Set("plume:run:broken", "{not json"))

	_, err := store.Load(context.Background(), "broken")
	assert.ErrorIs(t, err, domain.ErrArtifactIO)
}

func TestRedisStore_NewFromURL(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := redis.NewFromURL("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.Ping(context.Background()))

	_, err = redis.NewFromURL("://bad")
	assert.Error(t, err)
}
