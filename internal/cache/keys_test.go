package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(c)
	t.Cleanup(func() {
		SetClient(nil)
		_ = c.Close()
	})
	return mr
}

func TestRevokeTokenRoundTrip(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, RevokeToken(ctx, "jti-1", time.Minute))
	assert.True(t, IsTokenRevoked(ctx, "jti-1"))
	assert.False(t, IsTokenRevoked(ctx, "jti-2"))

	// The blacklist entry expires with the token.
	mr.FastForward(2 * time.Minute)
	assert.False(t, IsTokenRevoked(ctx, "jti-1"))
}

func TestRevokeTokenExpiredTTLIsNoop(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, RevokeToken(ctx, "jti-old", -time.Second))
	assert.False(t, IsTokenRevoked(ctx, "jti-old"))
}

func TestRevocationWithoutRedis(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	assert.Error(t, RevokeToken(ctx, "jti-x", time.Minute))
	assert.False(t, IsTokenRevoked(ctx, "jti-x"))
}

func TestAsideCachesLoadedValue(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	loads := 0
	load := func(dest *string) func() error {
		return func() error {
			loads++
			*dest = "value"
			return nil
		}
	}

	var first string
	require.NoError(t, Aside(ctx, "k", &first, time.Minute, load(&first)))
	assert.Equal(t, "value", first)
	assert.Equal(t, 1, loads)

	var second string
	require.NoError(t, Aside(ctx, "k", &second, time.Minute, load(&second)))
	assert.Equal(t, "value", second)
	assert.Equal(t, 1, loads, "second read should come from cache")
}
