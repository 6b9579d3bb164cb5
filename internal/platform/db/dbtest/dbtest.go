// Package dbtest はテスト用のインメモリSQLiteデータベースを提供します。
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"habit_backend/internal/platform/db"
)

// 外部キーを有効にし、カスケードと制約違反をPostgreSQLと同様に扱います。
const dsn = "file::memory:?_foreign_keys=on"

// Open はマイグレーション済みのインメモリデータベースを返します。テスト終了時に閉じられます。
// 全ての文が同じデータベースを参照するよう接続数は1に制限しているため、
// トランザクション内の文は必ずトランザクションのハンドルを使うこと。
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(dsn), db.GormConfig())
	require.NoError(t, err, "failed to open sqlite")

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb), "failed to migrate")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return gdb
}

// Gateway は新しいデータベース上のGatewayとgorm.DBを返します。
func Gateway(t *testing.T) (*db.Gateway, *gorm.DB) {
	t.Helper()
	gdb := Open(t)
	return db.NewGateway(gdb), gdb
}
