package tokenstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return client, mr, cleanup
}

func TestBlacklist_RevokeAndCheck(t *testing.T) {
	rdb, _, cleanup := setupTestRedis(t)
	defer cleanup()

	bl := NewBlacklist(rdb)
	ctx := context.Background()

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "jti-1", time.Hour))

	revoked, err = bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// 其他令牌不受影响
	revoked, err = bl.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestBlacklist_Expires(t *testing.T) {
	rdb, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	bl := NewBlacklist(rdb)
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "jti-1", time.Minute))
	mr.FastForward(2 * time.Minute)

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestBlacklist_EdgeCases(t *testing.T) {
	rdb, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	bl := NewBlacklist(rdb)
	ctx := context.Background()

	assert.ErrorIs(t, bl.Revoke(ctx, "", time.Hour), ErrEmptyTokenID)

	// 已过期的令牌不写入
	require.NoError(t, bl.Revoke(ctx, "jti-expired", 0))
	assert.False(t, mr.Exists(revokedKeyPrefix+"jti-expired"))

	revoked, err := bl.IsRevoked(ctx, "")
	require.NoError(t, err)
	assert.False(t, revoked)
}
