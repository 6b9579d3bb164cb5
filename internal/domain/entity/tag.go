package entity

import (
	"regexp"
	"time"
)

// DefaultTagColor は色を指定せずに作成したタグのグレーです。
const DefaultTagColor = "#6B7280"

// MaxTagNameLength はタグ名の最大文字数です。
const MaxTagNameLength = 50

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidColor はsが7文字の#RRGGBB形式かを返します。
func ValidColor(s string) bool {
	return colorPattern.MatchString(s)
}

// Tag は複数の習慣で共有されるラベルです。
type Tag struct {
	ID        string
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TagPatch は更新で変更できるタグのフィールドです。nilのフィールドは変更しません。
type TagPatch struct {
	Name  *string
	Color *string
}

// TagUsage はタグと関連付けられた習慣の件数です。
type TagUsage struct {
	Tag
	UsageCount int64
}

// HabitSummary はタグ詳細に表示する習慣の概要です。
type HabitSummary struct {
	ID          string
	Name        string
	Description *string
	IsActive    bool
}

// TagWithHabits はタグと関連付けられた習慣の概要です。
type TagWithHabits struct {
	Tag
	Habits []HabitSummary
}
