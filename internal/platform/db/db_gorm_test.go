package db

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"habit_backend/internal/platform/config"
)

// TestBuildDSN はPostgreSQL用のkey=value形式DSNが設定値から組み立てられることを検証します。
func TestBuildDSN(t *testing.T) {
	dsn := BuildDSN(config.DBConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "habit",
		Password: "s3cret",
		Name:     "habits",
		SSLMode:  "require",
		TimeZone: "Asia/Tokyo",
	})

	assert.Equal(t, "host=db.internal user=habit password=s3cret dbname=habits port=5433 sslmode=require TimeZone=Asia/Tokyo", dsn)
}

// TestConnectWithRetry は接続の成否に応じたリトライ回数と戻り値を検証します。
// retryIntervalを書き換えるため並列実行しない。
func TestConnectWithRetry(t *testing.T) {
	orig := retryInterval
	retryInterval = 5 * time.Millisecond
	t.Cleanup(func() { retryInterval = orig })

	refused := errors.New("connection refused")

	tests := []struct {
		name         string
		failures     int
		timeout      time.Duration
		wantErr      bool
		wantAttempts int
	}{
		{name: "first try", failures: 0, timeout: time.Second, wantAttempts: 1},
		{name: "succeeds after retries", failures: 2, timeout: time.Second, wantAttempts: 3},
		{name: "gives up at the deadline", failures: 1 << 30, timeout: 20 * time.Millisecond, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			want := &gorm.DB{}
			open := func(dsn string) (*gorm.DB, error) {
				assert.Equal(t, "dsn", dsn)
				attempts++
				if attempts <= tt.failures {
					return nil, refused
				}
				return want, nil
			}

			got, err := ConnectWithRetry("dsn", tt.timeout, open)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, refused)
				assert.Nil(t, got)
				assert.Positive(t, attempts)
				return
			}
			require.NoError(t, err)
			assert.Same(t, want, got)
			assert.Equal(t, tt.wantAttempts, attempts)
		})
	}
}
