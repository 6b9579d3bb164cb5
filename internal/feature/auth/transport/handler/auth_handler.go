// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"habit_backend/internal/api"
	"habit_backend/internal/domain/entity"
	"habit_backend/internal/feature/auth/transport/http/dto"
	"habit_backend/internal/feature/auth/usecase"
	jwtmw "habit_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、即時ログイン用のトークンを返します。
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, string, error)
	// Login はユーザーを認証し、成功時にトークンを返します。
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	// Logout はトークンを有効期限まで失効させます。
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メールアドレス・ユーザー名重複時は409を返却
// - 成功時はユーザーとトークン付きで201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "register", err)
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		api.WriteError(c, "register", err, "Failed to create user")
		return
	}

	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthRes{
		Message: "User created successfully",
		User:    dto.NewUserRes(user),
		Token:   token,
	})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - 認証失敗時はメールアドレス不明・パスワード不一致を区別せず401を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "login", err)
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		api.WriteError(c, "login", err, "Failed to login")
		return
	}

	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthRes{
		Message: "Login successful",
		User:    dto.NewUserRes(user),
		Token:   token,
	})
}

// Logout は提示されたトークンを失効させます。認証ミドルウェア配下で使用します。
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFrom(c)
	if !ok || claims.ExpiresAt == nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Access token required"})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		api.WriteError(c, "logout", err, "Failed to logout")
		return
	}

	slog.Info("user logged out", "user_id", claims.Subject, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "User logged out"})
}
