// Package dto はhabitsエンドポイントのリクエスト・レスポンス構造体を定義します。
package dto

import (
	"time"

	"habit_backend/internal/domain/entity"
)

// HabitURI はパスパラメータ:idを受け取ります。
type HabitURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// HabitTagURI はパスパラメータ:idと:tagIdを受け取ります。
type HabitTagURI struct {
	ID    string `uri:"id"    binding:"required,uuid"`
	TagID string `uri:"tagId" binding:"required,uuid"`
}

// CreateHabitReq はPOST /habitsのリクエストボディです。
// targetCountを省略した場合は既定値を使い、0以下を明示した場合は400になります。
type CreateHabitReq struct {
	Name        string   `json:"name"        binding:"required,max=100"`
	Description *string  `json:"description"`
	Frequency   string   `json:"frequency"   binding:"required,oneof=daily weekly monthly"`
	TargetCount *int     `json:"targetCount" binding:"omitempty,min=1"`
	TagIDs      []string `json:"tagIds"      binding:"omitempty,dive,uuid"`
}

// UpdateHabitReq はPUT /habits/:idのリクエストボディです。
// tagIdsを指定すると空配列でも関連付けを置き換えます。
// descriptionは空文字で削除し、nullまたは省略では変更しません。
type UpdateHabitReq struct {
	Name        *string   `json:"name"        binding:"omitempty,min=1,max=100"`
	Description *string   `json:"description"`
	Frequency   *string   `json:"frequency"   binding:"omitempty,oneof=daily weekly monthly"`
	TargetCount *int      `json:"targetCount" binding:"omitempty,min=1"`
	TagIDs      *[]string `json:"tagIds"      binding:"omitempty,dive,uuid"`
}

// CompleteHabitReq はPOST /habits/:id/completeの省略可能なリクエストボディです。
type CompleteHabitReq struct {
	Note *string `json:"note"`
}

// LogEntryReq はPOST /habits/:id/entriesのリクエストボディです。
type LogEntryReq struct {
	Note        *string    `json:"note"`
	CompletedAt *time.Time `json:"completedAt"`
}

// AddTagsReq はPOST /habits/:id/tagsのリクエストボディです。
type AddTagsReq struct {
	TagIDs []string `json:"tagIds" binding:"required,min=1,dive,uuid"`
}

// HabitTagRes は習慣に付いたタグです。
type HabitTagRes struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// EntryRes は1回分の記録です。
type EntryRes struct {
	ID             string    `json:"id"`
	HabitID        string    `json:"habitId"`
	CompletionDate time.Time `json:"completionDate"`
	Note           *string   `json:"note"`
	CreatedAt      time.Time `json:"createdAt"`
}

// HabitRes は習慣のレスポンス表現です。entriesは詳細取得時のみ含まれます。
type HabitRes struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Frequency   string        `json:"frequency"`
	TargetCount int           `json:"targetCount"`
	IsActive    bool          `json:"isActive"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Tags        []HabitTagRes `json:"tags"`
	Entries     *[]EntryRes   `json:"entries,omitempty"`
}

// NewEntryRes はentity.EntryをEntryResに変換します。
func NewEntryRes(e entity.Entry) EntryRes {
	return EntryRes{
		ID:             e.ID,
		HabitID:        e.HabitID,
		CompletionDate: e.CompletionDate,
		Note:           e.Note,
		CreatedAt:      e.CreatedAt,
	}
}

// NewHabitRes はentity.HabitをHabitResに変換します。
func NewHabitRes(h *entity.Habit) HabitRes {
	res := HabitRes{
		ID:          h.ID,
		UserID:      h.UserID,
		Name:        h.Name,
		Description: h.Description,
		Frequency:   string(h.Frequency),
		TargetCount: h.TargetCount,
		IsActive:    h.IsActive,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
		Tags:        make([]HabitTagRes, 0, len(h.Tags)),
	}
	for _, t := range h.Tags {
		res.Tags = append(res.Tags, HabitTagRes{ID: t.ID, Name: t.Name, Color: t.Color, CreatedAt: t.CreatedAt})
	}
	if h.Entries != nil {
		entries := make([]EntryRes, 0, len(h.Entries))
		for _, e := range h.Entries {
			entries = append(entries, NewEntryRes(e))
		}
		res.Entries = &entries
	}
	return res
}

// HabitEnvelope は習慣1件を包むレスポンスです。Messageは更新系でのみ設定します。
type HabitEnvelope struct {
	Message string   `json:"message,omitempty"`
	Habit   HabitRes `json:"habit"`
}

// HabitsRes は習慣の一覧です。
type HabitsRes struct {
	Habits []HabitRes `json:"habits"`
}

// NewHabitsRes は習慣の一覧を変換します。habitsがnullになることはありません。
func NewHabitsRes(hs []entity.Habit) HabitsRes {
	out := make([]HabitRes, 0, len(hs))
	for i := range hs {
		out = append(out, NewHabitRes(&hs[i]))
	}
	return HabitsRes{Habits: out}
}

// EntryEnvelope は追加した記録を包むレスポンスです。
type EntryEnvelope struct {
	Message string   `json:"message"`
	Entry   EntryRes `json:"entry"`
}
