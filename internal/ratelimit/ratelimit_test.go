package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllow_BurstThenDeny(t *testing.T) {
	krl := New(1, 2)
	defer krl.Stop()

	assert.True(t, krl.Allow("gateway"))
	assert.True(t, krl.Allow("gateway"))
	assert.False(t, krl.Allow("gateway"))

	// Keys are independent.
	assert.True(t, krl.Allow("other"))
}

func TestNew_NonPositiveRateIsUnlimited(t *testing.T) {
	krl := New(0, 0)
	defer krl.Stop()

	for range 100 {
		require.True(t, krl.Allow("gateway"))
	}
}

func TestWait_RespectsContext(t *testing.T) {
	krl := New(0.001, 1)
	defer krl.Stop()

	require.NoError(t, krl.Wait(context.Background(), "gateway"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, krl.Wait(ctx, "gateway"))
}

func TestEvictIdle(t *testing.T) {
	krl := NewWithTTL(1, 1, time.Minute)
	defer krl.Stop()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	krl.now = func() time.Time { return now }

	krl.Allow("stale")
	now = now.Add(2 * time.Minute)
	krl.Allow("fresh")

	assert.Equal(t, 1, krl.evictIdle())
	assert.Equal(t, 1, krl.Len())
}

func TestStop_Idempotent(t *testing.T) {
	krl := New(1, 1)
	krl.Stop()
	krl.Stop()
}
