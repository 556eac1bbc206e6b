package ratelimit_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genkan-app/genkan/internal/ratelimit"
)

func newTestLimiter(t *testing.T, rate, burst float64) *ratelimit.Limiter {
	t.Helper()

	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return ratelimit.New(rdb, "test:ratelimit", rate, burst)
}

func TestLimiterAllowsWithinBurst(t *testing.T) {
	ctx := context.Background()
	limiter := newTestLimiter(t, 1, 3)

	for i := 0; i < 3; i++ {
		allowed, _, err := limiter.Allow(ctx, "10.0.0.1:/login")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should pass", i)
	}

	allowed, wait, err := limiter.Allow(ctx, "10.0.0.1:/login")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, wait.Milliseconds(), int64(0))
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	limiter := newTestLimiter(t, 1, 1)

	allowed, _, err := limiter.Allow(ctx, "10.0.0.1:/login")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, err = limiter.Allow(ctx, "10.0.0.1:/login")
	require.NoError(t, err)
	assert.False(t, allowed)

	// a different client still has a full bucket
	allowed, _, err = limiter.Allow(ctx, "10.0.0.2:/login")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLimiterDisabled(t *testing.T) {
	ctx := context.Background()

	t.Run("nil client", func(t *testing.T) {
		limiter := ratelimit.New(nil, "", 1, 1)
		allowed, _, err := limiter.Allow(ctx, "anyone")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("non-positive rate", func(t *testing.T) {
		limiter := newTestLimiter(t, 0, 10)
		for i := 0; i < 20; i++ {
			allowed, _, err := limiter.Allow(ctx, "anyone")
			require.NoError(t, err)
			assert.True(t, allowed)
		}
	})
}

func TestLimiterSurfacesRedisErrors(t *testing.T) {
	ctx := context.Background()

	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { rdb.Close() })

	limiter := ratelimit.New(rdb, "test:ratelimit", 1, 1)
	srv.Close()

	_, _, err := limiter.Allow(ctx, "10.0.0.1:/login")
	assert.Error(t, err)
}
