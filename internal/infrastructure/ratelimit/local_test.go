package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLimiter_AgotaYRepone(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	l := NewLocalLimiter(Config{Capacity: 3, RefillPerMinute: 60})
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 2; i >= 0; i-- {
		res, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, i, res.Remaining)
		assert.Equal(t, 3, res.Limit)
	}

	res, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, time.Second, res.RetryAfter)

	// otra IP tiene su propio bucket
	res, _ = l.Allow(ctx, "5.6.7.8")
	assert.True(t, res.Allowed)

	now = now.Add(time.Second)
	res, _ = l.Allow(ctx, "1.2.3.4")
	assert.True(t, res.Allowed)
}

func TestLocalLimiter_DescartaClavesInactivas(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	l := NewLocalLimiter(Config{Capacity: 2, RefillPerMinute: 60})
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for _, ip := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		_, err := l.Allow(ctx, ip)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, l.size())

	// 2 tokens a 1/s: a los 2s cualquier bucket está lleno de nuevo
	now = now.Add(time.Second)
	_, _ = l.Allow(ctx, "1.1.1.1")
	now = now.Add(time.Second)
	res, err := l.Allow(ctx, "4.4.4.4")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, l.size(), "solo sobreviven 1.1.1.1 y la nueva")

	// una clave descartada vuelve con el bucket completo
	res, _ = l.Allow(ctx, "2.2.2.2")
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0", FormatSeconds(0))
	assert.Equal(t, "1", FormatSeconds(200*time.Millisecond))
	assert.Equal(t, "2", FormatSeconds(2*time.Second))
}

func TestRedisLimiter(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR no definido")
	}
	ctx := context.Background()
	rdb, err := NewRedisClient(ctx, addr, "", 0)
	require.NoError(t, err)
	defer rdb.Close()

	key := "test-" + time.Now().Format("150405.000000")
	l := NewRedisLimiter(rdb, Config{Capacity: 2, RefillPerMinute: 1, Prefix: "rl:test"})
	defer rdb.Del(ctx, "rl:test:"+key)

	r1, err := l.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, r1.Allowed)
	assert.Equal(t, 1, r1.Remaining)

	r2, _ := l.Allow(ctx, key)
	assert.True(t, r2.Allowed)

	r3, _ := l.Allow(ctx, key)
	assert.False(t, r3.Allowed)
	assert.Greater(t, r3.RetryAfter, time.Duration(0))
}
