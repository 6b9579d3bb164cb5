// Package usecase はauthフィーチャーのビジネスロジックを提供します。
package usecase

import "habit_backend/internal/domain"

var (
	// ErrUserNotFound はメールアドレスまたはIDでユーザーが見つからない場合に返されます。
	ErrUserNotFound = domain.NotFound("User not found")

	// ErrUserAlreadyExists はメールアドレスまたはユーザー名が登録済みの場合に返されます。
	ErrUserAlreadyExists = domain.Conflict("User with this email or username already exists")

	// ErrUsernameTaken はプロフィール更新で他のユーザーと同じユーザー名を指定した場合に返されます。
	ErrUsernameTaken = domain.Conflict("Username already taken")

	// ErrInvalidCredentials は未登録のメールアドレスとパスワード誤りの両方でLoginが返します。
	ErrInvalidCredentials = domain.Auth("Invalid credentials")
)
