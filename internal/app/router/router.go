// Package router はHTTPルーティングとミドルウェアの構成を提供します。
package router

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"habit_backend/internal/api"
	"habit_backend/internal/app/di"
	"habit_backend/internal/platform/config"
	"habit_backend/internal/platform/http/handler"
	jwtmw "habit_backend/internal/platform/jwt"
	"habit_backend/internal/platform/logging"
	"habit_backend/internal/platform/metrics"
	"habit_backend/internal/shared/ratelimiter"
)

// Deps はルータ構築に必要な依存関係です。
type Deps struct {
	Config   *config.Config
	Handlers *di.Handlers
	DB       handler.Pinger
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// NewRouter はAPIルータを生成します。
func NewRouter(d Deps) (*gin.Engine, error) {
	if err := api.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger(d.Logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}
	if origins := d.Config.CORS.AllowedOrigins; len(origins) > 0 {
		r.Use(cors.New(corsConfig(origins)))
	}

	// 認証不要
	// 導通確認用
	health := handler.Health(d.DB)
	r.GET("/health", health)
	r.HEAD("/health", health)
	r.OPTIONS("/health", health)
	if d.Metrics != nil {
		r.GET("/metrics", d.Metrics.Handler())
	}

	h := d.Handlers
	v1 := r.Group("/api/v1")
	authRequired := jwtmw.AuthRequired(h.JWTSecret, h.Revocations)

	// 新規登録・ログインはクライアントIPごとに頻度制限
	limiter := ratelimiter.NewKeyedLimiter(d.Config.RateLimit.AuthRPS, d.Config.RateLimit.AuthBurst, 10*time.Minute)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", limiter.Middleware(), h.Auth.Register)
		auth.POST("/login", limiter.Middleware(), h.Auth.Login)
		auth.POST("/logout", authRequired, h.Auth.Logout)
	}

	// 認証必須のルート
	me := v1.Group("/users/me", authRequired)
	{
		me.GET("", h.Profile.Get)
		me.PUT("", h.Profile.Update)
		me.DELETE("", h.Profile.Delete)
	}

	habits := v1.Group("/habits", authRequired)
	{
		habits.GET("", h.Habits.List)
		habits.POST("", h.Habits.Create)
		habits.GET("/:id", h.Habits.Get)
		habits.PUT("/:id", h.Habits.Update)
		habits.DELETE("/:id", h.Habits.Delete)
		habits.POST("/:id/complete", h.Habits.Complete)
		habits.POST("/:id/entries", h.Habits.LogEntry)
		habits.POST("/:id/tags", h.Habits.AddTags)
		habits.DELETE("/:id/tags/:tagId", h.Habits.RemoveTag)
	}

	tags := v1.Group("/tags", authRequired)
	{
		tags.GET("", h.Tags.List)
		tags.GET("/popular", h.Tags.Popular)
		tags.POST("", h.Tags.Create)
		tags.GET("/:id", h.Tags.Get)
		tags.PUT("/:id", h.Tags.Update)
		tags.DELETE("/:id", h.Tags.Delete)
		tags.GET("/:id/habits", h.Tags.Habits)
	}

	return r, nil
}
