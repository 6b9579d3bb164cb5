// Package usecase は習慣のライフサイクル操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"habit_backend/internal/domain"
	"habit_backend/internal/domain/entity"
)

// MaxNameLength は習慣名の最大文字数です。
const MaxNameLength = 100

// RecentEntriesLimit は習慣詳細に含める記録の件数です。
const RecentEntriesLimit = 10

// CreateInput は習慣作成の入力です。
type CreateInput struct {
	OwnerID     string
	Name        string
	Description *string
	Frequency   string
	// TargetCount がnilの場合はentity.DefaultTargetCountを使用します。指定時は正の整数であること。
	TargetCount *int
	TagIDs      []string
}

// UpdateInput は習慣更新の入力です。nilのフィールドは変更しません。
// TagIDs が非nilの場合、空スライスであっても関連付けを置き換えます。
type UpdateInput struct {
	Name        *string
	Description *string
	Frequency   *string
	TargetCount *int
	TagIDs      *[]string
}

// habitUsecase は習慣操作のユースケースを定義します。
type habitUsecase struct {
	tx     Transactor
	habits HabitRepository
	now    func() time.Time
}

// NewHabitUsecase はhabitUsecaseの新しいインスタンスを生成します。
func NewHabitUsecase(tx Transactor, habits HabitRepository) *habitUsecase {
	return &habitUsecase{tx: tx, habits: habits, now: time.Now}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

func parseFrequency(s string) (entity.Frequency, error) {
	f, err := entity.ParseFrequency(s)
	if err != nil {
		return "", ErrInvalidFrequency
	}
	return f, nil
}

// uniqueIDs は出現順を保ったまま重複と空文字を除去します。
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Create は習慣を作成し、指定されたタグを同一トランザクション内で関連付けます。
// 未知のタグIDが含まれる場合はErrUnknownTagを返し、習慣の作成もロールバックされます。
func (u *habitUsecase) Create(ctx context.Context, in CreateInput) (*entity.Habit, error) {
	if in.OwnerID == "" {
		return nil, ErrOwnerRequired
	}
	name, err := validateName(in.Name)
	if err != nil {
		return nil, err
	}
	freq, err := parseFrequency(in.Frequency)
	if err != nil {
		return nil, err
	}
	target := entity.DefaultTargetCount
	if in.TargetCount != nil {
		if *in.TargetCount <= 0 {
			return nil, ErrInvalidTargetCount
		}
		target = *in.TargetCount
	}

	h := &entity.Habit{
		UserID:      in.OwnerID,
		Name:        name,
		Description: in.Description,
		Frequency:   freq,
		TargetCount: target,
		IsActive:    true,
	}
	tagIDs := uniqueIDs(in.TagIDs)

	err = u.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := u.habits.Create(ctx, h); err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}
		return u.habits.AttachTags(ctx, h.ID, tagIDs)
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Get は所有者の習慣をタグと直近の記録付きで返します。
func (u *habitUsecase) Get(ctx context.Context, ownerID, habitID string) (*entity.Habit, error) {
	return u.habits.FindByID(ctx, ownerID, habitID)
}

// List は所有者の全習慣を新しい順に返します。
func (u *habitUsecase) List(ctx context.Context, ownerID string) ([]entity.Habit, error) {
	habits, err := u.habits.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if habits == nil {
		habits = []entity.Habit{}
	}
	return habits, nil
}

func (in UpdateInput) patch() (entity.HabitPatch, error) {
	var p entity.HabitPatch
	if in.Name != nil {
		name, err := validateName(*in.Name)
		if err != nil {
			return p, err
		}
		p.Name = &name
	}
	p.Description = in.Description
	if in.Frequency != nil {
		f, err := parseFrequency(*in.Frequency)
		if err != nil {
			return p, err
		}
		p.Frequency = &f
	}
	if in.TargetCount != nil {
		if *in.TargetCount <= 0 {
			return p, ErrInvalidTargetCount
		}
		p.TargetCount = in.TargetCount
	}
	return p, nil
}

// Update は指定されたフィールドを更新し、TagIDsが指定されていれば関連付けを置き換えます。
// 全体が1トランザクションで実行されます。
func (u *habitUsecase) Update(ctx context.Context, ownerID, habitID string, in UpdateInput) (*entity.Habit, error) {
	p, err := in.patch()
	if err != nil {
		return nil, err
	}

	var out *entity.Habit
	err = u.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := u.habits.Update(ctx, ownerID, habitID, p); err != nil {
			return err
		}
		if in.TagIDs != nil {
			if err := u.habits.ReplaceTags(ctx, habitID, uniqueIDs(*in.TagIDs)); err != nil {
				return err
			}
		}
		h, err := u.habits.FindByID(ctx, ownerID, habitID)
		if err != nil {
			return err
		}
		out = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Complete は習慣を非アクティブにし、既存の全記録の完了日時（とメモ）を上書きします。
// 新しい記録は作成しません。記録の追加はLogEntryを使用します。
func (u *habitUsecase) Complete(ctx context.Context, ownerID, habitID string, note *string) (*entity.Habit, error) {
	var out *entity.Habit
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := u.habits.Deactivate(ctx, ownerID, habitID); err != nil {
			return err
		}
		if err := u.habits.StampEntries(ctx, habitID, note); err != nil {
			return err
		}
		h, err := u.habits.FindByID(ctx, ownerID, habitID)
		if err != nil {
			return err
		}
		out = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete は所有者の習慣を削除します。
func (u *habitUsecase) Delete(ctx context.Context, ownerID, habitID string) error {
	return u.habits.Delete(ctx, ownerID, habitID)
}

// LogEntry は習慣に記録を1件追加します。習慣の状態は変更しません。
// completedAtがnilの場合は現在時刻を使用します。
func (u *habitUsecase) LogEntry(ctx context.Context, ownerID, habitID string, note *string, completedAt *time.Time) (*entity.Entry, error) {
	e := &entity.Entry{HabitID: habitID, Note: note}
	if completedAt != nil {
		e.CompletionDate = *completedAt
	} else {
		e.CompletionDate = u.now()
	}

	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := u.requireOwned(ctx, ownerID, habitID); err != nil {
			return err
		}
		return u.habits.CreateEntry(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// AddTags は習慣にタグを追加します。既に関連付けられているタグは無視されます。
func (u *habitUsecase) AddTags(ctx context.Context, ownerID, habitID string, tagIDs []string) error {
	ids := uniqueIDs(tagIDs)
	if len(ids) == 0 {
		return domain.Validation("tagIds must not be empty")
	}
	return u.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := u.requireOwned(ctx, ownerID, habitID); err != nil {
			return err
		}
		return u.habits.AttachTags(ctx, habitID, ids)
	})
}

// RemoveTag は習慣からタグの関連付けを外します。
func (u *habitUsecase) RemoveTag(ctx context.Context, ownerID, habitID, tagID string) error {
	return u.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := u.requireOwned(ctx, ownerID, habitID); err != nil {
			return err
		}
		return u.habits.DetachTag(ctx, habitID, tagID)
	})
}

func (u *habitUsecase) requireOwned(ctx context.Context, ownerID, habitID string) error {
	ok, err := u.habits.Owns(ctx, ownerID, habitID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrHabitNotFound
	}
	return nil
}
