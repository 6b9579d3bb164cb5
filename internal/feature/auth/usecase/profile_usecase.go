package usecase

import (
	"context"
	"strings"

	"habit_backend/internal/domain"
	"habit_backend/internal/domain/entity"
)

// profileUsecase はログイン中ユーザー自身のプロフィール操作を実装します。
type profileUsecase struct {
	users UserRepository
}

// NewProfileUsecase はprofileUsecaseの新しいインスタンスを生成します。
func NewProfileUsecase(users UserRepository) *profileUsecase {
	return &profileUsecase{users: users}
}

// GetProfile はユーザーのプロフィールを返します。
func (u *profileUsecase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateProfile は指定されたフィールドのみ更新し、更新後のプロフィールを返します。
func (u *profileUsecase) UpdateProfile(ctx context.Context, userID string, patch entity.UserPatch) (*entity.User, error) {
	if patch.Username != nil {
		trimmed := strings.TrimSpace(*patch.Username)
		if trimmed == "" {
			return nil, domain.Validation("username must not be empty")
		}
		patch.Username = &trimmed
	}
	if patch.Empty() {
		return u.users.FindByID(ctx, userID)
	}
	if err := u.users.Update(ctx, userID, patch); err != nil {
		return nil, err
	}
	return u.users.FindByID(ctx, userID)
}

// DeleteAccount はユーザーを削除します。所有する習慣はカスケード削除されます。
func (u *profileUsecase) DeleteAccount(ctx context.Context, userID string) error {
	return u.users.Delete(ctx, userID)
}
