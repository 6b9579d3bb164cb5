// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"habit_backend/internal/domain/entity"
	"habit_backend/internal/feature/auth/usecase"
	"habit_backend/internal/platform/db"
	"habit_backend/internal/platform/db/schema"
)

// userGorm はUserRepositoryインターフェースのGORM実装です。
type userGorm struct {
	gw *db.Gateway
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm は指定されたGatewayでuserGormの新しいインスタンスを生成します。
func NewUserGorm(gw *db.Gateway) *userGorm {
	return &userGorm{gw: gw}
}

// Create はユーザーをデータベースに追加し、採番されたIDとタイムスタンプをuに反映します。
// メールアドレスまたはユーザー名が重複する場合、usecase.ErrUserAlreadyExistsを返します。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	m := schema.UserModelFromEntity(u)
	if err := r.gw.Conn(ctx).Create(m).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrUserAlreadyExists
		}
		return err
	}
	*u = *m.ToEntity()
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByID はIDでユーザーを取得します。
func (r *userGorm) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userGorm) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var m schema.UserModel
	if err := r.gw.Conn(ctx).Where(query, arg).First(&m).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// Update はpatchのうちnilでないフィールドのみ更新します。
func (r *userGorm) Update(ctx context.Context, id string, patch entity.UserPatch) error {
	updates := map[string]any{}
	if patch.Username != nil {
		updates["username"] = *patch.Username
	}
	if patch.FirstName != nil {
		updates["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		updates["last_name"] = *patch.LastName
	}
	if len(updates) == 0 {
		return nil
	}

	res := r.gw.Conn(ctx).Model(&schema.UserModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if db.IsUniqueViolation(res.Error) {
			return usecase.ErrUsernameTaken
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// Delete はユーザーを削除します。習慣・記録・タグ関連付けは外部キーでカスケード削除されます。
func (r *userGorm) Delete(ctx context.Context, id string) error {
	res := r.gw.Conn(ctx).Where("id = ?", id).Delete(&schema.UserModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}
