//go:build unit
// +build unit

package ratelimit

import (
	"context"
	"testing"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLimiter_BurstThenDeny(t *testing.T) {
	limiter := NewLocalLimiter(1, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d within burst", i)
	}

	ok, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	// other keys have their own bucket
	ok, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalLimiter_ResetsWhenFull(t *testing.T) {
	limiter := NewLocalLimiter(1, 1)
	limiter.maxKeys = 2
	ctx := context.Background()

	_, _ = limiter.Allow(ctx, "a")
	_, _ = limiter.Allow(ctx, "b")
	_, _ = limiter.Allow(ctx, "c")

	assert.Len(t, limiter.limiters, 1)
}

func TestNewLimiter_WithoutRedis(t *testing.T) {
	limiter, closeFn := NewLimiter(context.Background(),
		&config.RedisSettings{Enabled: false},
		&config.RateLimitSettings{RequestsPerSecond: 5, Burst: 5},
		testutil.SetupTestLogger(t))
	defer func() { _ = closeFn() }()

	assert.IsType(t, &LocalLimiter{}, limiter)
}
