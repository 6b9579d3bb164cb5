package usecase

import (
	"context"

	"habit_backend/internal/domain/entity"
)

// fakeTx runs fn directly and counts the transactions it opened.
type fakeTx struct {
	calls int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// mockHabitRepository is a func-field mock of HabitRepository.
// Unset funcs succeed with zero values.
type mockHabitRepository struct {
	CreateFunc       func(ctx context.Context, h *entity.Habit) error
	AttachTagsFunc   func(ctx context.Context, habitID string, tagIDs []string) error
	ReplaceTagsFunc  func(ctx context.Context, habitID string, tagIDs []string) error
	DetachTagFunc    func(ctx context.Context, habitID, tagID string) error
	FindByIDFunc     func(ctx context.Context, ownerID, habitID string) (*entity.Habit, error)
	ListByOwnerFunc  func(ctx context.Context, ownerID string) ([]entity.Habit, error)
	OwnsFunc         func(ctx context.Context, ownerID, habitID string) (bool, error)
	UpdateFunc       func(ctx context.Context, ownerID, habitID string, patch entity.HabitPatch) error
	DeactivateFunc   func(ctx context.Context, ownerID, habitID string) error
	StampEntriesFunc func(ctx context.Context, habitID string, note *string) error
	DeleteFunc       func(ctx context.Context, ownerID, habitID string) error
	CreateEntryFunc  func(ctx context.Context, e *entity.Entry) error
}

var _ HabitRepository = (*mockHabitRepository)(nil)

func (m *mockHabitRepository) Create(ctx context.Context, h *entity.Habit) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, h)
	}
	h.ID = "habit-1"
	return nil
}

func (m *mockHabitRepository) AttachTags(ctx context.Context, habitID string, tagIDs []string) error {
	if m.AttachTagsFunc != nil {
		return m.AttachTagsFunc(ctx, habitID, tagIDs)
	}
	return nil
}

func (m *mockHabitRepository) ReplaceTags(ctx context.Context, habitID string, tagIDs []string) error {
	if m.ReplaceTagsFunc != nil {
		return m.ReplaceTagsFunc(ctx, habitID, tagIDs)
	}
	return nil
}

func (m *mockHabitRepository) DetachTag(ctx context.Context, habitID, tagID string) error {
	if m.DetachTagFunc != nil {
		return m.DetachTagFunc(ctx, habitID, tagID)
	}
	return nil
}

func (m *mockHabitRepository) FindByID(ctx context.Context, ownerID, habitID string) (*entity.Habit, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, ownerID, habitID)
	}
	return &entity.Habit{ID: habitID, UserID: ownerID}, nil
}

func (m *mockHabitRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Habit, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockHabitRepository) Owns(ctx context.Context, ownerID, habitID string) (bool, error) {
	if m.OwnsFunc != nil {
		return m.OwnsFunc(ctx, ownerID, habitID)
	}
	return true, nil
}

func (m *mockHabitRepository) Update(ctx context.Context, ownerID, habitID string, patch entity.HabitPatch) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, ownerID, habitID, patch)
	}
	return nil
}

func (m *mockHabitRepository) Deactivate(ctx context.Context, ownerID, habitID string) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, ownerID, habitID)
	}
	return nil
}

func (m *mockHabitRepository) StampEntries(ctx context.Context, habitID string, note *string) error {
	if m.StampEntriesFunc != nil {
		return m.StampEntriesFunc(ctx, habitID, note)
	}
	return nil
}

func (m *mockHabitRepository) Delete(ctx context.Context, ownerID, habitID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ownerID, habitID)
	}
	return nil
}

func (m *mockHabitRepository) CreateEntry(ctx context.Context, e *entity.Entry) error {
	if m.CreateEntryFunc != nil {
		return m.CreateEntryFunc(ctx, e)
	}
	e.ID = "entry-1"
	return nil
}
