package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

func TestNewRevocationRedis(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewRevocationRedis(client, "habit")

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.client, "client is nil")
	assert.Equal(t, "habit", repo.prefix)
}

func TestRevocationRedis_RevokeAndCheck(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewRevocationRedis(client, "habit")
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err = repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// TTL tracks the token's remaining lifetime
	ttl := mr.TTL("habit:revoked:jti-1")
	assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 5)

	mr.FastForward(time.Hour + time.Second)
	revoked, err = repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "revocation must expire with the token")
}

func TestRevocationRedis_RevokeExpiredTokenIsNoop(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewRevocationRedis(client, "habit")

	require.NoError(t, repo.Revoke(context.Background(), "old", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists("habit:revoked:old"))
}

func TestRevocationRedis_Errors(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	repo := NewRevocationRedis(rdb, "habit")
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	mock.ExpectSet("habit:revoked:jti-1", "1", time.Hour).SetErr(errors.New("connection refused"))
	err := repo.Revoke(context.Background(), "jti-1", fixed.Add(time.Hour))
	assert.ErrorContains(t, err, "failed to revoke token")

	mock.ExpectGet("habit:revoked:jti-2").SetErr(errors.New("connection refused"))
	_, err = repo.IsRevoked(context.Background(), "jti-2")
	assert.ErrorContains(t, err, "failed to look up token")

	assert.NoError(t, mock.ExpectationsWereMet())
}
