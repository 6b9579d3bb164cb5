package db

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// Gateway はリレーショナルストアへアクセスする唯一のコンポーネントです。
// アダプタはConnで接続を取得し、ctxにトランザクションがあればそれに参加します。
type Gateway struct {
	db *gorm.DB
}

// NewGateway はdbをラップしたGatewayを生成します。
func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// Conn はctxに紐づくトランザクションを返します。無ければctxをセットしたセッションを返します。
func (g *Gateway) Conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return g.db.WithContext(ctx)
}

// WithinTx はfnをトランザクション内で実行します。
// fnがnilを返せばコミットし、エラーを返すかpanicした場合はロールバックします。
// 入れ子の呼び出しは外側のトランザクションに参加します。
func (g *Gateway) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
