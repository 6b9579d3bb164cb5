package adapters

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"habit_backend/internal/platform/db"
	"habit_backend/internal/platform/db/schema"
)

// revocationGorm はRedisが利用できない場合の失効トークンストアです。
type revocationGorm struct {
	gw  *db.Gateway
	now func() time.Time
}

// NewRevocationGorm は指定されたGatewayでrevocationGormの新しいインスタンスを生成します。
func NewRevocationGorm(gw *db.Gateway) *revocationGorm {
	return &revocationGorm{gw: gw, now: time.Now}
}

// Revoke はトークンIDを失効済みとして記録します。同じIDの再登録は無視されます。
func (r *revocationGorm) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if !expiresAt.After(r.now()) {
		return nil
	}
	m := &schema.RevokedTokenModel{JTI: tokenID, ExpiresAt: expiresAt.UTC()}
	if err := r.gw.Conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m).Error; err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked はトークンIDが失効済みかを返します。有効期限を過ぎた記録は無視します。
func (r *revocationGorm) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var n int64
	err := r.gw.Conn(ctx).Model(&schema.RevokedTokenModel{}).
		Where("jti = ? AND expires_at > ?", tokenID, r.now().UTC()).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up token: %w", err)
	}
	return n > 0, nil
}

// DeleteExpired は有効期限を過ぎた失効記録を削除し、削除件数を返します。
func (r *revocationGorm) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.gw.Conn(ctx).Where("expires_at <= ?", r.now().UTC()).Delete(&schema.RevokedTokenModel{})
	return res.RowsAffected, res.Error
}
