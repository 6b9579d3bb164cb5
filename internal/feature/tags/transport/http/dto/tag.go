// Package dto はtagsエンドポイントのリクエスト・レスポンス構造体を定義します。
package dto

import (
	"time"

	"habit_backend/internal/domain/entity"
)

// TagURI はパスパラメータ:idを受け取ります。UUID形式であること。
type TagURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// PopularQuery はクエリ?limit=を受け取ります。範囲外の値はユースケースで丸められます。
type PopularQuery struct {
	Limit int `form:"limit"`
}

// CreateTagReq はPOST /tagsのリクエストボディです。
type CreateTagReq struct {
	Name  string  `json:"name"  binding:"required,max=50"`
	Color *string `json:"color" binding:"omitempty,hexcolor6"`
}

// UpdateTagReq はPUT /tags/:idのリクエストボディです。
type UpdateTagReq struct {
	Name  *string `json:"name"  binding:"omitempty,min=1,max=50"`
	Color *string `json:"color" binding:"omitempty,hexcolor6"`
}

// Patch はリクエストをentity.TagPatchに変換します。
func (r UpdateTagReq) Patch() entity.TagPatch {
	return entity.TagPatch{Name: r.Name, Color: r.Color}
}

// TagRes はタグのレスポンス表現です。
type TagRes struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewTagRes はentity.TagをTagResに変換します。
func NewTagRes(t entity.Tag) TagRes {
	return TagRes{ID: t.ID, Name: t.Name, Color: t.Color, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

// HabitSummaryRes はタグ詳細に含める習慣の概要です。
type HabitSummaryRes struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsActive    bool    `json:"isActive"`
}

// TagDetailRes はタグと関連付けられた習慣の概要です。
type TagDetailRes struct {
	TagRes
	Habits []HabitSummaryRes `json:"habits"`
}

// NewTagDetailRes はタグ詳細を変換します。habitsがnullになることはありません。
func NewTagDetailRes(t *entity.TagWithHabits) TagDetailRes {
	res := TagDetailRes{TagRes: NewTagRes(t.Tag), Habits: make([]HabitSummaryRes, 0, len(t.Habits))}
	for _, h := range t.Habits {
		res.Habits = append(res.Habits, HabitSummaryRes{ID: h.ID, Name: h.Name, Description: h.Description, IsActive: h.IsActive})
	}
	return res
}

// PopularTagRes はタグと関連付け件数です。
type PopularTagRes struct {
	TagRes
	UsageCount int64 `json:"usageCount"`
}

// TaggedHabitRes はタグ配下に一覧される習慣です。
type TaggedHabitRes struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Frequency   string    `json:"frequency"`
	TargetCount int       `json:"targetCount"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TagEnvelope はタグ1件を包むレスポンスです。Messageは更新系でのみ設定します。
type TagEnvelope struct {
	Message string `json:"message,omitempty"`
	Tag     any    `json:"tag"`
}

// TagsRes はタグの一覧です。
type TagsRes struct {
	Tags any `json:"tags"`
}

func NewTagsRes(ts []entity.Tag) TagsRes {
	out := make([]TagRes, 0, len(ts))
	for _, t := range ts {
		out = append(out, NewTagRes(t))
	}
	return TagsRes{Tags: out}
}

// NewPopularRes は人気タグの一覧を件数付きで変換します。
func NewPopularRes(us []entity.TagUsage) TagsRes {
	out := make([]PopularTagRes, 0, len(us))
	for _, u := range us {
		out = append(out, PopularTagRes{TagRes: NewTagRes(u.Tag), UsageCount: u.UsageCount})
	}
	return TagsRes{Tags: out}
}

// TaggedHabitsRes はタグが付いた習慣の一覧です。
type TaggedHabitsRes struct {
	Habits []TaggedHabitRes `json:"habits"`
}

func NewTaggedHabitsRes(hs []entity.Habit) TaggedHabitsRes {
	out := make([]TaggedHabitRes, 0, len(hs))
	for _, h := range hs {
		out = append(out, TaggedHabitRes{
			ID:          h.ID,
			UserID:      h.UserID,
			Name:        h.Name,
			Description: h.Description,
			Frequency:   string(h.Frequency),
			TargetCount: h.TargetCount,
			IsActive:    h.IsActive,
			CreatedAt:   h.CreatedAt,
			UpdatedAt:   h.UpdatedAt,
		})
	}
	return TaggedHabitsRes{Habits: out}
}
