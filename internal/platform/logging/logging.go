// Package logging はプロセス全体で使うslogロガーを設定します。
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"habit_backend/internal/platform/config"
)

// ParseLevel はレベル名をslog.Levelに変換します。不明な名前はInfoになります。
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Writer は標準出力を返します。cfg.Fileが設定されていればローテーションするファイルにも出力します。
// 戻り値のio.Closerはファイルを閉じます。ファイルが無い場合は何もしません。
func Writer(cfg config.LogConfig) (io.Writer, io.Closer) {
	if cfg.File == "" {
		return os.Stdout, nopCloser{}
	}
	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.Rotation.MaxSize,
		MaxBackups: cfg.Rotation.MaxBackups,
		MaxAge:     cfg.Rotation.MaxAge,
		Compress:   cfg.Rotation.Compress,
	}
	return io.MultiWriter(os.Stdout, file), file
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New はwに出力するロガーを生成します。
func New(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup は設定に従ったロガーをslogのデフォルトに設定します。
func Setup(cfg config.LogConfig) io.Closer {
	w, closer := Writer(cfg)
	slog.SetDefault(New(w, cfg))
	return closer
}
