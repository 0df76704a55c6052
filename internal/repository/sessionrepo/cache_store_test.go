package sessionrepo_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/cache/cachetest"
	"cinecatalog/internal/pkg/logger"
	"cinecatalog/internal/repository/sessionrepo"
)

func TestCacheStore_ReplaceAndLookup(t *testing.T) {
	mem := cachetest.NewMemory()
	store := sessionrepo.NewCacheStore(mem, 0, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Replace(ctx, "user-1", "sid-1"))

	userID, err := store.Lookup(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestCacheStore_ReplaceInvalidatesPreviousSession(t *testing.T) {
	mem := cachetest.NewMemory()
	store := sessionrepo.NewCacheStore(mem, 0, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Replace(ctx, "user-1", "sid-old"))
	require.NoError(t, store.Replace(ctx, "user-1", "sid-new"))

	_, err := store.Lookup(ctx, "sid-old")
	assert.True(t, apperror.IsNotFound(err))

	userID, err := store.Lookup(ctx, "sid-new")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestCacheStore_SessionsOfDifferentUsersAreIndependent(t *testing.T) {
	mem := cachetest.NewMemory()
	store := sessionrepo.NewCacheStore(mem, 0, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Replace(ctx, "user-1", "sid-1"))
	require.NoError(t, store.Replace(ctx, "user-2", "sid-2"))

	u1, err := store.Lookup(ctx, "sid-1")
	require.NoError(t, err)
	u2, err := store.Lookup(ctx, "sid-2")
	require.NoError(t, err)
	assert.Equal(t, "user-1", u1)
	assert.Equal(t, "user-2", u2)
}

func TestCacheStore_AppliesTTL(t *testing.T) {
	mem := cachetest.NewMemory()
	store := sessionrepo.NewCacheStore(mem, 30*time.Minute, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Replace(ctx, "user-1", "sid-1"))
	assert.Equal(t, 30*time.Minute, mem.TTLs["session:sid-1"])
	assert.Equal(t, 30*time.Minute, mem.TTLs["user-session:user-1"])

	// expiração simulada
	require.NoError(t, mem.Expire(ctx, "session:sid-1", 0))
	_, err := store.Lookup(ctx, "sid-1")
	assert.True(t, apperror.IsNotFound(err))
}

func TestCacheStore_BackendFailureIsInternal(t *testing.T) {
	mem := cachetest.NewMemory()
	mem.Err = errors.New("redis: connection refused")
	store := sessionrepo.NewCacheStore(mem, 0, logger.NewNop())

	_, err := store.Lookup(context.Background(), "sid-1")
	var internal *apperror.InternalError
	assert.ErrorAs(t, err, &internal)

	err = store.Replace(context.Background(), "user-1", "sid-1")
	assert.ErrorAs(t, err, &internal)
}

func TestCacheStore_ConcurrentLoginsLeaveOneLiveSession(t *testing.T) {
	const logins = 8

	mem := cachetest.NewMemory()
	store := sessionrepo.NewCacheStore(mem, 0, logger.NewNop())
	ctx := context.Background()
	require.NoError(t, store.Replace(ctx, "user-1", "sid-old"))

	// todas as chamadas gravam a própria sessão antes de qualquer troca
	var arrived sync.WaitGroup
	arrived.Add(logins)
	mem.BeforeSwap = func(string) {
		arrived.Done()
		arrived.Wait()
	}

	var wg sync.WaitGroup
	errs := make(chan error, logins)
	for i := 0; i < logins; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- store.Replace(ctx, "user-1", fmt.Sprintf("sid-%d", i))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	current, err := mem.Get(ctx, "user-session:user-1")
	require.NoError(t, err)

	live := 0
	for i := 0; i < logins; i++ {
		sid := fmt.Sprintf("sid-%d", i)
		if mem.Has("session:" + sid) {
			live++
			assert.Equal(t, current, sid)
		}
	}
	assert.Equal(t, 1, live)
	assert.False(t, mem.Has("session:sid-old"))
}

func TestCacheStore_ReplaceSameSessionKeepsIt(t *testing.T) {
	mem := cachetest.NewMemory()
	store := sessionrepo.NewCacheStore(mem, 0, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Replace(ctx, "user-1", "sid-1"))
	require.NoError(t, store.Replace(ctx, "user-1", "sid-1"))

	userID, err := store.Lookup(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}
