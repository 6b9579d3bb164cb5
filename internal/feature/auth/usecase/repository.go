package usecase

import (
	"context"
	"time"

	"habit_backend/internal/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// インターフェースは利用側（usecase）で定義し、実装はadaptersが提供します。
type UserRepository interface {
	// Create は新しいユーザーを保存し、IDとタイムスタンプを設定します。
	// メールアドレスまたはユーザー名が使用済みの場合はErrUserAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は該当ユーザーが無い場合ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は該当ユーザーが無い場合ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// Update はpatchのうちnilでない項目を更新します。
	// 該当ユーザーが無い場合はErrUserNotFound、ユーザー名が使用済みの場合はErrUsernameTakenを返します。
	Update(ctx context.Context, id string, patch entity.UserPatch) error

	// Delete はユーザーを削除し、習慣・記録・タグの関連付けもカスケード削除します。
	// 該当ユーザーが無い場合はErrUserNotFoundを返します。
	Delete(ctx context.Context, id string) error
}

// PasswordHasher はパスワードのハッシュ化と照合を行います。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// TokenIssuer は署名済みのセッショントークンを発行します。
type TokenIssuer interface {
	GenerateToken(userID, email, username string) (string, error)
}

// TokenRevoker はセッショントークンを有効期限前に無効化します。
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}
