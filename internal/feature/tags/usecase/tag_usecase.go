// Package usecase はタグの管理と人気ランキングのビジネスロジックを提供します。
package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"habit_backend/internal/domain/entity"
)

const (
	// DefaultPopularLimit は正の件数が指定されなかった場合の件数です。
	DefaultPopularLimit = 10
	// MaxPopularLimit はランキング件数の上限です。
	MaxPopularLimit = 100
)

// tagUsecase はタグに関するユースケースを実装します。
type tagUsecase struct {
	tags TagRepository
}

// NewTagUsecase はTagRepositoryを受け取りtagUsecaseを生成します。
func NewTagUsecase(tags TagRepository) *tagUsecase {
	return &tagUsecase{tags: tags}
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrTagNameRequired
	}
	if utf8.RuneCountInString(name) > entity.MaxTagNameLength {
		return "", ErrTagNameTooLong
	}
	return name, nil
}

// Create はタグを作成します。色が未指定の場合はentity.DefaultTagColorを使用します。
// 名前の重複は事前確認とユニーク制約のどちらで検出してもErrTagExistsを返します。
func (u *tagUsecase) Create(ctx context.Context, name string, color *string) (*entity.Tag, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	c := entity.DefaultTagColor
	if color != nil && *color != "" {
		if !entity.ValidColor(*color) {
			return nil, ErrInvalidColor
		}
		c = *color
	}

	taken, err := u.tags.ExistsByName(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrTagExists
	}

	t := &entity.Tag{Name: name, Color: c}
	if err := u.tags.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get はタグと関連付けられた習慣の概要を返します。存在しない場合はErrTagNotFoundを返します。
func (u *tagUsecase) Get(ctx context.Context, id string) (*entity.TagWithHabits, error) {
	t, err := u.tags.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	habits, err := u.tags.HabitSummaries(ctx, id)
	if err != nil {
		return nil, err
	}
	if habits == nil {
		habits = []entity.HabitSummary{}
	}
	return &entity.TagWithHabits{Tag: *t, Habits: habits}, nil
}

// List は全タグを名前順で返します。
func (u *tagUsecase) List(ctx context.Context) ([]entity.Tag, error) {
	tags, err := u.tags.List(ctx)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []entity.Tag{}
	}
	return tags, nil
}

// Update は指定されたフィールドを更新します。他のタグと同じ名前への変更はErrTagExistsを返します。
func (u *tagUsecase) Update(ctx context.Context, id string, patch entity.TagPatch) (*entity.Tag, error) {
	if patch.Name != nil {
		name, err := normalizeName(*patch.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if patch.Color != nil && !entity.ValidColor(*patch.Color) {
		return nil, ErrInvalidColor
	}

	if patch.Name != nil {
		taken, err := u.tags.ExistsByName(ctx, *patch.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrTagExists
		}
	}

	if err := u.tags.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return u.tags.FindByID(ctx, id)
}

// Delete はタグを削除します。習慣との関連付けはカスケードで削除されます。
func (u *tagUsecase) Delete(ctx context.Context, id string) error {
	return u.tags.Delete(ctx, id)
}

// ClampPopularLimit は要求件数を1からMaxPopularLimitの範囲に収めます。
// 0以下はDefaultPopularLimitとして扱います。
func ClampPopularLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultPopularLimit
	case limit > MaxPopularLimit:
		return MaxPopularLimit
	}
	return limit
}

// Popular はよく使われているタグを返します。
func (u *tagUsecase) Popular(ctx context.Context, limit int) ([]entity.TagUsage, error) {
	usages, err := u.tags.Popular(ctx, ClampPopularLimit(limit))
	if err != nil {
		return nil, err
	}
	if usages == nil {
		usages = []entity.TagUsage{}
	}
	return usages, nil
}

// HabitsForTag はタグが付いた習慣を返します。タグが存在しない場合はErrTagNotFoundを返します。
func (u *tagUsecase) HabitsForTag(ctx context.Context, id string) ([]entity.Habit, error) {
	if _, err := u.tags.FindByID(ctx, id); err != nil {
		return nil, err
	}
	habits, err := u.tags.Habits(ctx, id)
	if err != nil {
		return nil, err
	}
	if habits == nil {
		habits = []entity.Habit{}
	}
	return habits, nil
}
