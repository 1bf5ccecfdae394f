package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/boardinghouse/internal/config"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestLockerAcquireIsExclusive(t *testing.T) {
	ctx := context.Background()
	locker := NewLocker(newTestRedis(t))

	release, err := locker.Acquire(ctx, "invoice:1", time.Second)
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, "invoice:1", time.Second)
	require.ErrorIs(t, err, ErrLockHeld)

	release()
	release2, err := locker.Acquire(ctx, "invoice:1", time.Second)
	require.NoError(t, err)
	release2()
}

func TestLockerReleaseIgnoresForeignToken(t *testing.T) {
	ctx := context.Background()
	client := newTestRedis(t)
	locker := NewLocker(client)

	_, ok, err := locker.TryLock(ctx, "k", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, locker.Release(ctx, "k", "not-the-owner"))
	exists, err := client.Exists(ctx, "k").Result()
	require.NoError(t, err)
	require.Equal(t, int64(1), exists)
}

func TestNilLockerIsNoop(t *testing.T) {
	var locker *Locker
	release, err := locker.Acquire(context.Background(), "invoice:1", time.Second)
	require.NoError(t, err)
	release()
}

func TestPortalLimiterDeniesAfterBurst(t *testing.T) {
	ctx := context.Background()
	limiter := NewPortalLimiter(config.Config{PortalRateLimit: 0.001, PortalRateBurst: 2}, NewTokenBucket(newTestRedis(t)))
	require.True(t, limiter.Enabled())

	for i := 0; i < 2; i++ {
		res, err := limiter.Allow(ctx, "user-1")
		require.NoError(t, err)
		require.True(t, res.Allowed)
	}
	res, err := limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, res.Allowed)
	require.Greater(t, res.RetryAfter, time.Duration(0))

	other, err := limiter.Allow(ctx, "user-2")
	require.NoError(t, err)
	require.True(t, other.Allowed)
}

func TestDisabledPortalLimiterAllows(t *testing.T) {
	limiter := NewPortalLimiter(config.Config{}, nil)
	res, err := limiter.Allow(context.Background(), "user-1")
	require.NoError(t, err)
	require.True(t, res.Allowed)
}
