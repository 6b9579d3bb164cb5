package usecase

import (
	"context"

	"habit_backend/internal/domain/entity"
)

// TagRepository はタグの永続化を抽象化します。タグはユーザーに属さない共有リソースです。
type TagRepository interface {
	// Create はタグを追加します。名前が重複する場合はErrTagExistsを返します。
	Create(ctx context.Context, t *entity.Tag) error
	// ExistsByName はnameを使うタグが存在するかを返します。excludeIDが空でなければそのタグは除外します。
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	// FindByID はIDでタグを取得します。存在しない場合はErrTagNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Tag, error)
	// List は全タグを名前の昇順で返します。
	List(ctx context.Context) ([]entity.Tag, error)
	// Update はpatchのうちnilでないフィールドを更新します。
	// 存在しない場合はErrTagNotFound、名前が重複する場合はErrTagExistsを返します。
	Update(ctx context.Context, id string, patch entity.TagPatch) error
	// Delete はタグと関連付けを削除します。存在しない場合はErrTagNotFoundを返します。
	Delete(ctx context.Context, id string) error

	// Popular は関連付け件数の多い順に最大limit件のタグを返します。
	Popular(ctx context.Context, limit int) ([]entity.TagUsage, error)
	// HabitSummaries はtagIDに関連付けられた習慣の概要を返します。
	HabitSummaries(ctx context.Context, tagID string) ([]entity.HabitSummary, error)
	// Habits はtagIDに関連付けられた習慣を返します。
	Habits(ctx context.Context, tagID string) ([]entity.Habit, error)
}
