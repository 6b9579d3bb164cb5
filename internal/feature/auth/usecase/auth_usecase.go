package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"habit_backend/internal/domain"
	"habit_backend/internal/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// dummyPasswordHash はユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュです。
	dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// RegisterInput は新規登録の入力です。
type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users   UserRepository
	hasher  PasswordHasher
	tokens  TokenIssuer
	revoker TokenRevoker
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer, revoker TokenRevoker) *authUsecase {
	return &authUsecase{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		revoker: revoker,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return domain.Validation(fmt.Sprintf("password must be at least %d characters long", minPasswordLength))
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、即時ログイン用のトークンを返します。
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, string, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	if in.Email == "" || in.Username == "" {
		return nil, "", domain.Validation("email and username are required")
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, "", err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &entity.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hashed,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// Login はユーザーを認証し、成功時にトークンと公開プロフィールを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもパスワード比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, "", err
	}

	passwordHash := dummyPasswordHash
	if err == nil {
		passwordHash = user.PasswordHash
	}

	// 常にパスワードを検証
	matched := u.hasher.Verify(password, passwordHash)

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || !matched {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// Logout は提示されたトークンを有効期限まで失効させます。
func (u *authUsecase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return domain.Validation("token id is required")
	}
	return u.revoker.Revoke(ctx, tokenID, expiresAt)
}
