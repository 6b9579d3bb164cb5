// Package adapters は習慣フィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"habit_backend/internal/domain/entity"
	"habit_backend/internal/feature/habits/usecase"
	"habit_backend/internal/platform/db"
	"habit_backend/internal/platform/db/schema"
)

// habitGorm はHabitRepositoryインターフェースのGORM実装です。
type habitGorm struct {
	gw *db.Gateway
}

// habitGormがHabitRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.HabitRepository = (*habitGorm)(nil)

// NewHabitGorm は指定されたGatewayでhabitGormの新しいインスタンスを生成します。
func NewHabitGorm(gw *db.Gateway) *habitGorm {
	return &habitGorm{gw: gw}
}

func ownedBy(ownerID, habitID string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id = ? AND user_id = ?", habitID, ownerID)
	}
}

// Create は習慣を追加します。
func (r *habitGorm) Create(ctx context.Context, h *entity.Habit) error {
	m := schema.HabitModelFromEntity(h)
	if err := r.gw.Conn(ctx).Create(m).Error; err != nil {
		return err
	}
	*h = *m.ToEntity()
	return nil
}

// AttachTags は関連付けを一括挿入します。既存の組はON CONFLICT DO NOTHINGで無視します。
func (r *habitGorm) AttachTags(ctx context.Context, habitID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	conn := r.gw.Conn(ctx)
	base := conn.NowFunc()
	rows := make([]schema.HabitTagModel, len(tagIDs))
	for i, id := range tagIDs {
		// created_atは取得時の並び順になるため、入力順に1マイクロ秒ずつずらします。
		rows[i] = schema.HabitTagModel{HabitID: habitID, TagID: id, CreatedAt: base.Add(time.Duration(i) * time.Microsecond)}
	}
	err := conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return usecase.ErrUnknownTag
		}
		return err
	}
	return nil
}

// ReplaceTags は既存の関連付けを削除し、tagIDsを挿入します。
func (r *habitGorm) ReplaceTags(ctx context.Context, habitID string, tagIDs []string) error {
	if err := r.gw.Conn(ctx).Where("habit_id = ?", habitID).Delete(&schema.HabitTagModel{}).Error; err != nil {
		return err
	}
	return r.AttachTags(ctx, habitID, tagIDs)
}

// DetachTag は関連付けを1件削除します。
func (r *habitGorm) DetachTag(ctx context.Context, habitID, tagID string) error {
	res := r.gw.Conn(ctx).Where("habit_id = ? AND tag_id = ?", habitID, tagID).Delete(&schema.HabitTagModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrHabitTagNotFound
	}
	return nil
}

// FindByID は習慣をタグ（関連付け順）と直近の記録（完了日時の降順）付きで返します。
func (r *habitGorm) FindByID(ctx context.Context, ownerID, habitID string) (*entity.Habit, error) {
	conn := r.gw.Conn(ctx)

	var m schema.HabitModel
	if err := conn.Scopes(ownedBy(ownerID, habitID)).First(&m).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrHabitNotFound
		}
		return nil, err
	}
	h := m.ToEntity()

	tags, err := r.tagsFor(conn, []string{h.ID})
	if err != nil {
		return nil, err
	}
	h.Tags = tags[h.ID]
	if h.Tags == nil {
		h.Tags = []entity.Tag{}
	}

	var entries []schema.EntryModel
	err = conn.Where("habit_id = ?", h.ID).
		Order("completion_date DESC").
		Limit(usecase.RecentEntriesLimit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	h.Entries = make([]entity.Entry, 0, len(entries))
	for i := range entries {
		h.Entries = append(h.Entries, entries[i].ToEntity())
	}
	return h, nil
}

// ListByOwner は所有習慣を作成日時の降順で返します。タグは1クエリでまとめて取得します。
func (r *habitGorm) ListByOwner(ctx context.Context, ownerID string) ([]entity.Habit, error) {
	conn := r.gw.Conn(ctx)

	var ms []schema.HabitModel
	if err := conn.Where("user_id = ?", ownerID).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return []entity.Habit{}, nil
	}

	ids := make([]string, len(ms))
	for i := range ms {
		ids[i] = ms[i].ID
	}
	tags, err := r.tagsFor(conn, ids)
	if err != nil {
		return nil, err
	}

	out := make([]entity.Habit, 0, len(ms))
	for i := range ms {
		h := ms[i].ToEntity()
		h.Tags = tags[h.ID]
		if h.Tags == nil {
			h.Tags = []entity.Tag{}
		}
		out = append(out, *h)
	}
	return out, nil
}

// habitTagRow はタグ行に関連付け元の習慣IDを加えたものです。
type habitTagRow struct {
	schema.TagModel
	HabitID string
}

func (r *habitGorm) tagsFor(conn *gorm.DB, habitIDs []string) (map[string][]entity.Tag, error) {
	var rows []habitTagRow
	err := conn.Table("tags").
		Select("tags.*, habit_tags.habit_id").
		Joins("JOIN habit_tags ON habit_tags.tag_id = tags.id").
		Where("habit_tags.habit_id IN ?", habitIDs).
		Order("habit_tags.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string][]entity.Tag, len(habitIDs))
	for i := range rows {
		out[rows[i].HabitID] = append(out[rows[i].HabitID], rows[i].ToEntity())
	}
	return out, nil
}

// Owns は習慣がownerIDの所有かを返します。
func (r *habitGorm) Owns(ctx context.Context, ownerID, habitID string) (bool, error) {
	var n int64
	err := r.gw.Conn(ctx).Model(&schema.HabitModel{}).Scopes(ownedBy(ownerID, habitID)).Count(&n).Error
	return n > 0, err
}

// Update はpatchのうちnilでないフィールドを更新し、updated_atを更新します。
// Descriptionが空文字の場合は説明をNULLに戻します。
// 所有者の行が無い場合はusecase.ErrHabitNotFoundを返します。
func (r *habitGorm) Update(ctx context.Context, ownerID, habitID string, patch entity.HabitPatch) error {
	conn := r.gw.Conn(ctx)
	updates := map[string]any{"updated_at": conn.NowFunc()}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			updates["description"] = nil
		} else {
			updates["description"] = *patch.Description
		}
	}
	if patch.Frequency != nil {
		updates["frequency"] = string(*patch.Frequency)
	}
	if patch.TargetCount != nil {
		updates["target_count"] = *patch.TargetCount
	}
	return r.updateOwned(conn, ownerID, habitID, updates)
}

// Deactivate は習慣を非アクティブにします。
func (r *habitGorm) Deactivate(ctx context.Context, ownerID, habitID string) error {
	conn := r.gw.Conn(ctx)
	return r.updateOwned(conn, ownerID, habitID, map[string]any{
		"is_active":  false,
		"updated_at": conn.NowFunc(),
	})
}

func (r *habitGorm) updateOwned(conn *gorm.DB, ownerID, habitID string, updates map[string]any) error {
	res := conn.Model(&schema.HabitModel{}).Scopes(ownedBy(ownerID, habitID)).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrHabitNotFound
	}
	return nil
}

// StampEntries は習慣の全記録の完了日時を現在時刻に上書きします。記録が無い場合は何もしません。
func (r *habitGorm) StampEntries(ctx context.Context, habitID string, note *string) error {
	conn := r.gw.Conn(ctx)
	updates := map[string]any{"completion_date": conn.NowFunc()}
	if note != nil {
		updates["note"] = *note
	}
	return conn.Model(&schema.EntryModel{}).Where("habit_id = ?", habitID).Updates(updates).Error
}

// Delete は習慣を削除します。
func (r *habitGorm) Delete(ctx context.Context, ownerID, habitID string) error {
	res := r.gw.Conn(ctx).Scopes(ownedBy(ownerID, habitID)).Delete(&schema.HabitModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrHabitNotFound
	}
	return nil
}

// CreateEntry は記録を追加します。
func (r *habitGorm) CreateEntry(ctx context.Context, e *entity.Entry) error {
	m := &schema.EntryModel{
		HabitID:        e.HabitID,
		CompletionDate: e.CompletionDate.UTC(),
		Note:           e.Note,
	}
	if err := r.gw.Conn(ctx).Create(m).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return usecase.ErrHabitNotFound
		}
		return err
	}
	*e = m.ToEntity()
	return nil
}
