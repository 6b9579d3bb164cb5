// Package dto はauthフィーチャーのHTTPリクエスト・レスポンス構造体を定義します。
package dto

import (
	"time"

	"habit_backend/internal/domain/entity"
)

// RegisterReq は/auth/registerのリクエストボディを表す構造体です。
// Ginのbindingタグで入力チェック（必須・メール形式・文字数）を行います。
type RegisterReq struct {
	Email     string `json:"email"     binding:"required,email,max=255"`
	Username  string `json:"username"  binding:"required,min=3,max=50"`
	Password  string `json:"password"  binding:"required,min=8,max=72"`
	FirstName string `json:"firstName" binding:"max=50"`
	LastName  string `json:"lastName"  binding:"max=50"`
}

// LoginReq は/auth/loginのリクエストボディを表す構造体です。
type LoginReq struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserRes はユーザーの公開プロフィールです。パスワードのハッシュは含みません。
type UserRes struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserRes はentity.UserをUserResに変換します。
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

// AuthRes は登録とログインのレスポンスです。
type AuthRes struct {
	Message string  `json:"message"`
	User    UserRes `json:"user"`
	Token   string  `json:"token"`
}
