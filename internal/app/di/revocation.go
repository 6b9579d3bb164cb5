package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	authadapters "habit_backend/internal/feature/auth/adapters"
	"habit_backend/internal/platform/db"
	"habit_backend/internal/platform/session"
)

// RevocationStore はログアウトしたトークンを記録し、JWTミドルウェアの問い合わせに答えます。
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NewRevocationStore はRevocationStoreの実装を生成します。
// Redisが利用可能ならRedis実装を返します。
// それ以外はデータベース実装を返し、期限切れの行を一度だけ削除します。
func NewRevocationStore(ctx context.Context, rdb *redis.Client, gw *db.Gateway, prefix string) RevocationStore {
	if rdb != nil {
		return session.NewRevocationRedis(rdb, prefix)
	}
	store := authadapters.NewRevocationGorm(gw)
	if n, err := store.DeleteExpired(ctx); err != nil {
		slog.Warn("failed to prune expired revocations", "error", err)
	} else if n > 0 {
		slog.Info("pruned expired revocations", "count", n)
	}
	return store
}
