package usecase

import (
	"context"

	"habit_backend/internal/domain/entity"
)

// HabitRepository は習慣・記録・タグ関連付けの永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
// 所有者でスコープされる操作は、他ユーザーの習慣をErrHabitNotFoundとして扱います。
type HabitRepository interface {
	// Create は習慣を追加し、採番されたIDとタイムスタンプをhに反映します。
	Create(ctx context.Context, h *entity.Habit) error
	// AttachTags は関連付けを追加します。既存の組は無視し、未知のタグはErrUnknownTagを返します。
	AttachTags(ctx context.Context, habitID string, tagIDs []string) error
	// ReplaceTags は習慣の関連付けをtagIDsで置き換えます。
	ReplaceTags(ctx context.Context, habitID string, tagIDs []string) error
	// DetachTag は関連付けを1件削除します。
	DetachTag(ctx context.Context, habitID, tagID string) error

	// FindByID はタグと直近の記録を含む習慣を返します。
	FindByID(ctx context.Context, ownerID, habitID string) (*entity.Habit, error)
	// ListByOwner はタグを含む所有習慣を作成日時の降順で返します。
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Habit, error)
	// Owns は習慣がownerIDの所有かを返します。
	Owns(ctx context.Context, ownerID, habitID string) (bool, error)

	// Update はpatchのうちnilでないフィールドを更新します。
	Update(ctx context.Context, ownerID, habitID string, patch entity.HabitPatch) error
	// Deactivate は習慣を非アクティブにします。
	Deactivate(ctx context.Context, ownerID, habitID string) error
	// StampEntries は習慣の全記録の完了日時を現在時刻に、noteが指定されていればメモも上書きします。
	StampEntries(ctx context.Context, habitID string, note *string) error
	// Delete は習慣を削除します。記録と関連付けはカスケード削除されます。
	Delete(ctx context.Context, ownerID, habitID string) error

	// CreateEntry は記録を1件追加します。
	CreateEntry(ctx context.Context, e *entity.Entry) error
}

// Transactor はトランザクション境界を提供します。fnに渡されるctxで実行された操作は同一トランザクションに参加します。
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
