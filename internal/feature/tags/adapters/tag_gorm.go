// Package adapters はtagsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"habit_backend/internal/domain/entity"
	"habit_backend/internal/feature/tags/usecase"
	"habit_backend/internal/platform/db"
	"habit_backend/internal/platform/db/schema"
)

// tagGorm はTagRepositoryインターフェースのGORM実装です。
// すべての操作はdb.Gatewayを通して実行され、ctxのトランザクションに参加します。
type tagGorm struct {
	gw *db.Gateway
}

// tagGormがTagRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.TagRepository = (*tagGorm)(nil)

// NewTagGorm は指定されたGatewayでtagGormの新しいインスタンスを生成します。
func NewTagGorm(gw *db.Gateway) *tagGorm {
	return &tagGorm{gw: gw}
}

// Create はタグを追加し、採番されたIDとタイムスタンプをtに反映します。
// 同じ名前のタグが既に存在する場合、usecase.ErrTagExistsを返します。
func (r *tagGorm) Create(ctx context.Context, t *entity.Tag) error {
	m := &schema.TagModel{Name: t.Name, Color: t.Color}
	if err := r.gw.Conn(ctx).Create(m).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrTagExists
		}
		return err
	}
	*t = m.ToEntity()
	return nil
}

// ExistsByName はnameを使うタグが存在するかを返します。
// excludeIDが空でなければそのタグは判定から除外します。
func (r *tagGorm) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	q := r.gw.Conn(ctx).Model(&schema.TagModel{}).Where("name = ?", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindByID はIDでタグを取得します。
// タグが存在しない場合、usecase.ErrTagNotFoundを返します。
func (r *tagGorm) FindByID(ctx context.Context, id string) (*entity.Tag, error) {
	var m schema.TagModel
	if err := r.gw.Conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrTagNotFound
		}
		return nil, err
	}
	t := m.ToEntity()
	return &t, nil
}

// List は全タグを名前の昇順で返します。タグが無い場合は空のスライスを返します。
func (r *tagGorm) List(ctx context.Context) ([]entity.Tag, error) {
	var ms []schema.TagModel
	if err := r.gw.Conn(ctx).Order("name ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Tag, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToEntity())
	}
	return out, nil
}

// Update はpatchのうちnilでないフィールドとupdated_atを更新します。
// タグが存在しない場合はusecase.ErrTagNotFound、名前が重複する場合はusecase.ErrTagExistsを返します。
func (r *tagGorm) Update(ctx context.Context, id string, patch entity.TagPatch) error {
	conn := r.gw.Conn(ctx)
	updates := map[string]any{"updated_at": conn.NowFunc()}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}

	res := conn.Model(&schema.TagModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if db.IsUniqueViolation(res.Error) {
			return usecase.ErrTagExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTagNotFound
	}
	return nil
}

// Delete はタグを削除します。habit_tagsの関連付けは外部キーによりカスケード削除されます。
// タグが存在しない場合、usecase.ErrTagNotFoundを返します。
func (r *tagGorm) Delete(ctx context.Context, id string) error {
	res := r.gw.Conn(ctx).Where("id = ?", id).Delete(&schema.TagModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTagNotFound
	}
	return nil
}

// usageRow はタグ行に関連付け件数を加えたものです。
type usageRow struct {
	schema.TagModel
	UsageCount int64
}

// Popular は関連付け件数の多い順に最大limit件のタグを返します。
// 件数は1回の集計クエリで求め、同数の場合は名前の昇順です。
func (r *tagGorm) Popular(ctx context.Context, limit int) ([]entity.TagUsage, error) {
	var rows []usageRow
	err := r.gw.Conn(ctx).Table("tags").
		Select("tags.*, COUNT(habit_tags.id) AS usage_count").
		Joins("LEFT JOIN habit_tags ON habit_tags.tag_id = tags.id").
		Group("tags.id").
		Order("usage_count DESC, tags.name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.TagUsage, 0, len(rows))
	for i := range rows {
		out = append(out, entity.TagUsage{Tag: rows[i].ToEntity(), UsageCount: rows[i].UsageCount})
	}
	return out, nil
}

type summaryRow struct {
	ID          string
	Name        string
	Description *string
	IsActive    bool
}

// HabitSummaries はtagIDに関連付けられた習慣の概要を関連付けた順に返します。
// タグの存在確認は行いません。
func (r *tagGorm) HabitSummaries(ctx context.Context, tagID string) ([]entity.HabitSummary, error) {
	var rows []summaryRow
	err := r.gw.Conn(ctx).Table("habits").
		Select("habits.id, habits.name, habits.description, habits.is_active").
		Joins("JOIN habit_tags ON habit_tags.habit_id = habits.id").
		Where("habit_tags.tag_id = ?", tagID).
		Order("habit_tags.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.HabitSummary, 0, len(rows))
	for _, s := range rows {
		out = append(out, entity.HabitSummary{ID: s.ID, Name: s.Name, Description: s.Description, IsActive: s.IsActive})
	}
	return out, nil
}

// Habits はtagIDに関連付けられた習慣を作成日時の新しい順に返します。
// タグや記録は読み込みません。
func (r *tagGorm) Habits(ctx context.Context, tagID string) ([]entity.Habit, error) {
	var ms []schema.HabitModel
	err := r.gw.Conn(ctx).
		Select("habits.*").
		Joins("JOIN habit_tags ON habit_tags.habit_id = habits.id").
		Where("habit_tags.tag_id = ?", tagID).
		Order("habits.created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Habit, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].ToEntity())
	}
	return out, nil
}
