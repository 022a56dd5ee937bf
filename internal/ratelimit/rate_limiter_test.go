package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	clock := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	ml := NewMemoryLimiter(Config{Max: 2, Window: time.Minute})
	ml.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := ml.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := ml.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	ok, _ = ml.Allow(ctx, "10.0.0.2")
	assert.True(t, ok, "keys are independent")

	clock = clock.Add(time.Minute)
	ok, _ = ml.Allow(ctx, "10.0.0.1")
	assert.True(t, ok, "window expired")
}

func TestRedisLimiter_WithoutClient(t *testing.T) {
	ok, err := NewRedisLimiter(nil, "auth", DefaultAuthConfig()).Allow(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
}
