package entity

import (
	"fmt"
	"time"
)

// Frequency は習慣を実施する頻度です。
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// DefaultTargetCount は目標回数を指定せずに作成した場合の値です。
const DefaultTargetCount = 1

// Valid はfが定義済みの頻度かを返します。
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// ParseFrequency はsをFrequencyに変換します。未定義の値の場合はエラーを返します。
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(s)
	if !f.Valid() {
		return "", fmt.Errorf("frequency must be one of daily, weekly, monthly: got %q", s)
	}
	return f, nil
}

// Habit は所有者が記録する繰り返しの活動です。
// TagsとEntriesは詳細取得と一覧取得でのみ設定されます。
type Habit struct {
	ID          string
	UserID      string
	Name        string
	Description *string
	Frequency   Frequency
	TargetCount int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Tags    []Tag
	Entries []Entry
}

// HabitPatch は更新で変更できる習慣のフィールドです。nilのフィールドは変更しません。
// 完了した習慣は再開できないため、アクティブフラグは含みません。
type HabitPatch struct {
	Name        *string
	Description *string
	Frequency   *Frequency
	TargetCount *int
}

// Entry は習慣の1回分の記録です。
type Entry struct {
	ID             string
	HabitID        string
	CompletionDate time.Time
	Note           *string
	CreatedAt      time.Time
}
