package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"habit_backend/internal/app/di"
	"habit_backend/internal/app/router"
	"habit_backend/internal/platform/config"
	"habit_backend/internal/platform/db"
	"habit_backend/internal/platform/logging"
	"habit_backend/internal/platform/metrics"
	infraredis "habit_backend/internal/platform/redis"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "habit-server",
	Short:         "Habit tracking REST API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logs, err := loadConfig()
		if err != nil {
			return err
		}
		defer logs.Close()
		return serve(cmd.Context(), cfg)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logs, err := loadConfig()
		if err != nil {
			return err
		}
		defer logs.Close()
		gdb, err := db.OpenDB(cfg.DB)
		if err != nil {
			return err
		}
		defer closeDB(gdb)
		if err := db.Migrate(gdb); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		slog.Info("migration completed")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig は設定を読み込み、ロガーを初期化します。
func loadConfig() (*config.Config, io.Closer, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, logging.Setup(cfg.Log), nil
}

func closeDB(gdb *gorm.DB) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	gin.SetMode(cfg.Server.Mode)

	// db
	gdb, err := db.OpenDB(cfg.DB)
	if err != nil {
		return err
	}
	defer closeDB(gdb)
	if cfg.RunMigrations {
		if err := db.Migrate(gdb); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	gw := db.NewGateway(gdb)

	// Redis 接続できない場合はDBで失効トークンを管理
	var rdb *redisv9.Client
	if cfg.Redis.Enabled {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("redis unavailable, storing revocations in the database", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close redis client", "error", err)
				}
			}()
		}
	}

	revocations := di.NewRevocationStore(ctx, rdb, gw, cfg.Redis.Prefix)
	engine, err := router.NewRouter(router.Deps{
		Config:   cfg,
		Handlers: di.NewHandlers(cfg, gw, revocations),
		DB:       sqlDB,
		Metrics:  metrics.New(),
		Logger:   slog.Default(),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
