package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/bangladiet/backend/internal/service"
	"github.com/pageza/bangladiet/backend/internal/testhelpers"
)

func TestRedisTokenBlacklist(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	blacklist := service.NewRedisTokenBlacklist(client)
	ctx := context.Background()

	revoked, err := blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, blacklist.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl, err := client.TTL(ctx, "blacklist:access_token:jti-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)

	require.NoError(t, blacklist.Revoke(ctx, "jti-2", 0))
	revoked, err = blacklist.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisTokenBlacklist_Unreachable(t *testing.T) {
	blacklist := service.NewRedisTokenBlacklist(testhelpers.UnreachableRedis(t))
	_, err := blacklist.IsRevoked(context.Background(), "jti")
	assert.Error(t, err)
}
