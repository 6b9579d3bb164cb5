// Package schema は全テーブルのGORMモデルとテーブル間の参照整合性ルールを定義します。
package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"habit_backend/internal/domain/entity"
)

// Models はマイグレーション順に全モデルを返します。
func Models() []any {
	return []any{
		&UserModel{},
		&HabitModel{},
		&EntryModel{},
		&TagModel{},
		&HabitTagModel{},
		&RevokedTokenModel{},
	}
}

func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// UserModel はusersテーブルのGORMモデルです。
type UserModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	Username  string `gorm:"uniqueIndex;size:50;not null"`
	Password  string `gorm:"size:80;not null"`
	FirstName string `gorm:"size:50;not null"`
	LastName  string `gorm:"size:50;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(*gorm.DB) error {
	newID(&m.ID)
	return nil
}

// ToEntity はモデルをentity.Userに変換します。
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		Username:     m.Username,
		PasswordHash: m.Password,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// UserModelFromEntity はentity.Userから保存用のモデルを生成します。
func UserModelFromEntity(u *entity.User) *UserModel {
	return &UserModel{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Password:  u.PasswordHash,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// HabitModel はhabitsテーブルのGORMモデルです。
// 所有ユーザーを削除すると習慣もカスケード削除されます。
type HabitModel struct {
	ID          string     `gorm:"primaryKey;size:36"`
	UserID      string     `gorm:"size:36;not null;index"`
	User        *UserModel `gorm:"constraint:OnDelete:CASCADE"`
	Name        string     `gorm:"size:100;not null"`
	Description *string    `gorm:"type:text"`
	Frequency   string     `gorm:"size:20;not null"`
	TargetCount int        `gorm:"not null;default:1"`
	IsActive    bool       `gorm:"not null;default:true"`
	CreatedAt   time.Time  `gorm:"index"`
	UpdatedAt   time.Time
}

func (HabitModel) TableName() string { return "habits" }

func (m *HabitModel) BeforeCreate(*gorm.DB) error {
	newID(&m.ID)
	return nil
}

// ToEntity はモデルをentity.Habitに変換します。タグと記録は含みません。
func (m *HabitModel) ToEntity() *entity.Habit {
	return &entity.Habit{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		Frequency:   entity.Frequency(m.Frequency),
		TargetCount: m.TargetCount,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// HabitModelFromEntity はentity.Habitから保存用のモデルを生成します。
func HabitModelFromEntity(h *entity.Habit) *HabitModel {
	return &HabitModel{
		ID:          h.ID,
		UserID:      h.UserID,
		Name:        h.Name,
		Description: h.Description,
		Frequency:   string(h.Frequency),
		TargetCount: h.TargetCount,
		IsActive:    h.IsActive,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

// EntryModel はentriesテーブルのGORMモデルです。
type EntryModel struct {
	ID             string      `gorm:"primaryKey;size:36"`
	HabitID        string      `gorm:"size:36;not null;index"`
	Habit          *HabitModel `gorm:"constraint:OnDelete:CASCADE"`
	CompletionDate time.Time   `gorm:"not null;index"`
	Note           *string     `gorm:"type:text"`
	CreatedAt      time.Time
}

func (EntryModel) TableName() string { return "entries" }

// BeforeCreate はIDを採番し、完了日時が未設定なら現在時刻を設定します。
func (m *EntryModel) BeforeCreate(tx *gorm.DB) error {
	newID(&m.ID)
	if m.CompletionDate.IsZero() {
		m.CompletionDate = tx.NowFunc()
	}
	return nil
}

// ToEntity はモデルをentity.Entryに変換します。
func (m *EntryModel) ToEntity() entity.Entry {
	return entity.Entry{
		ID:             m.ID,
		HabitID:        m.HabitID,
		CompletionDate: m.CompletionDate,
		Note:           m.Note,
		CreatedAt:      m.CreatedAt,
	}
}

// TagModel はtagsテーブルのGORMモデルです。
// 名前の重複はnameのユニークインデックスで最終的に判定します。
type TagModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"uniqueIndex;size:50;not null"`
	Color     string `gorm:"size:7;not null;default:'#6B7280'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TagModel) TableName() string { return "tags" }

func (m *TagModel) BeforeCreate(*gorm.DB) error {
	newID(&m.ID)
	return nil
}

// ToEntity はモデルをentity.Tagに変換します。
func (m *TagModel) ToEntity() entity.Tag {
	return entity.Tag{
		ID:        m.ID,
		Name:      m.Name,
		Color:     m.Color,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// HabitTagModel は中間テーブルhabit_tagsのGORMモデルです。
// 習慣とタグのどちらを削除しても行は削除され、同じ組は1行までです。
type HabitTagModel struct {
	ID        string      `gorm:"primaryKey;size:36"`
	HabitID   string      `gorm:"size:36;not null;uniqueIndex:idx_habit_tag,priority:1"`
	Habit     *HabitModel `gorm:"constraint:OnDelete:CASCADE"`
	TagID     string      `gorm:"size:36;not null;uniqueIndex:idx_habit_tag,priority:2;index"`
	Tag       *TagModel   `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (HabitTagModel) TableName() string { return "habit_tags" }

func (m *HabitTagModel) BeforeCreate(*gorm.DB) error {
	newID(&m.ID)
	return nil
}

// RevokedTokenModel はrevoked_tokensテーブルのGORMモデルです。
// Redisが使えない場合のログアウトに使用します。
type RevokedTokenModel struct {
	JTI       string    `gorm:"primaryKey;size:64"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

func (RevokedTokenModel) TableName() string { return "revoked_tokens" }
