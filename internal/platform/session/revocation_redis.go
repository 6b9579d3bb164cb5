// Package session は失効したセッショントークンをRedisに保存します。
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationRedis はログアウトしたトークンIDを本来の有効期限まで記録します。
type RevocationRedis struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRevocationRedis はRevocationRedisの新しいインスタンスを生成します。
func NewRevocationRedis(client *redis.Client, prefix string) *RevocationRedis {
	return &RevocationRedis{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// revokedKey は失効トークンIDのRedisキーを返します。
func (r *RevocationRedis) revokedKey(tokenID string) string {
	return fmt.Sprintf("%s:revoked:%s", r.prefix, tokenID)
}

// Revoke はtokenIDを失効済みにします。期限切れのトークンはミドルウェアで拒否されるため記録しません。
func (r *RevocationRedis) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, r.revokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked はtokenIDが失効済みかを返します。
func (r *RevocationRedis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.client.Get(ctx, r.revokedKey(tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up token: %w", err)
	}
	return true, nil
}
