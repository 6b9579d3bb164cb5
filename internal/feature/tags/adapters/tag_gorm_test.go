package adapters

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"habit_backend/internal/domain/entity"
	"habit_backend/internal/feature/tags/usecase"
	"habit_backend/internal/platform/db/dbtest"
	"habit_backend/internal/platform/db/schema"
)

const missingID = "00000000-0000-0000-0000-000000000000"

func seedUser(t *testing.T, gdb *gorm.DB) string {
	t.Helper()
	u := &schema.UserModel{Email: "owner@example.com", Username: "owner", Password: "x", FirstName: "F", LastName: "L"}
	require.NoError(t, gdb.Create(u).Error)
	return u.ID
}

func seedHabits(t *testing.T, gdb *gorm.DB, ownerID string, n int) []string {
	t.Helper()
	ids := make([]string, n)
	for i := range ids {
		h := &schema.HabitModel{UserID: ownerID, Name: fmt.Sprintf("habit-%d", i), Frequency: "daily", TargetCount: 1, IsActive: true}
		require.NoError(t, gdb.Create(h).Error)
		ids[i] = h.ID
	}
	return ids
}

func link(t *testing.T, gdb *gorm.DB, tagID string, habitIDs ...string) {
	t.Helper()
	for _, h := range habitIDs {
		require.NoError(t, gdb.Create(&schema.HabitTagModel{HabitID: h, TagID: tagID}).Error)
	}
}

func TestTagGorm_CreateAndFind(t *testing.T) {
	gw, _ := dbtest.Gateway(t)
	repo := NewTagGorm(gw)
	ctx := context.Background()

	tag := &entity.Tag{Name: "health", Color: "#00FF00"}
	require.NoError(t, repo.Create(ctx, tag))
	assert.Len(t, tag.ID, 36)

	err := repo.Create(ctx, &entity.Tag{Name: "health", Color: "#000000"})
	assert.ErrorIs(t, err, usecase.ErrTagExists, "unique index is authoritative")

	got, err := repo.FindByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "#00FF00", got.Color)

	_, err = repo.FindByID(ctx, missingID)
	assert.ErrorIs(t, err, usecase.ErrTagNotFound)
}

func TestTagGorm_ExistsByName(t *testing.T) {
	gw, _ := dbtest.Gateway(t)
	repo := NewTagGorm(gw)
	ctx := context.Background()
	tag := &entity.Tag{Name: "focus", Color: entity.DefaultTagColor}
	require.NoError(t, repo.Create(ctx, tag))

	ok, err := repo.ExistsByName(ctx, "focus", "")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsByName(ctx, "focus", tag.ID)
	require.NoError(t, err)
	assert.False(t, ok, "own name is not a conflict")
}

func TestTagGorm_ListOrdersByName(t *testing.T) {
	gw, _ := dbtest.Gateway(t)
	repo := NewTagGorm(gw)
	ctx := context.Background()
	for _, n := range []string{"zen", "art", "metal"} {
		require.NoError(t, repo.Create(ctx, &entity.Tag{Name: n, Color: entity.DefaultTagColor}))
	}

	tags, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "art", tags[0].Name)
	assert.Equal(t, "metal", tags[1].Name)
	assert.Equal(t, "zen", tags[2].Name)
}

func TestTagGorm_Update(t *testing.T) {
	gw, _ := dbtest.Gateway(t)
	repo := NewTagGorm(gw)
	ctx := context.Background()
	a := &entity.Tag{Name: "a", Color: entity.DefaultTagColor}
	b := &entity.Tag{Name: "b", Color: entity.DefaultTagColor}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	color := "#ABCDEF"
	require.NoError(t, repo.Update(ctx, a.ID, entity.TagPatch{Color: &color}))
	got, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "#ABCDEF", got.Color)
	assert.Equal(t, "a", got.Name)

	name := "b"
	assert.ErrorIs(t, repo.Update(ctx, a.ID, entity.TagPatch{Name: &name}), usecase.ErrTagExists)
	assert.ErrorIs(t, repo.Update(ctx, missingID, entity.TagPatch{Color: &color}), usecase.ErrTagNotFound)
}

func TestTagGorm_DeleteCascadesAssociations(t *testing.T) {
	gw, gdb := dbtest.Gateway(t)
	repo := NewTagGorm(gw)
	ctx := context.Background()
	habits := seedHabits(t, gdb, seedUser(t, gdb), 2)
	tag := &entity.Tag{Name: "gone", Color: entity.DefaultTagColor}
	require.NoError(t, repo.Create(ctx, tag))
	link(t, gdb, tag.ID, habits...)

	require.NoError(t, repo.Delete(ctx, tag.ID))

	var n int64
	require.NoError(t, gdb.Model(&schema.HabitTagModel{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, gdb.Model(&schema.HabitModel{}).Count(&n).Error)
	assert.Equal(t, int64(2), n, "habits survive tag deletion")
	assert.ErrorIs(t, repo.Delete(ctx, tag.ID), usecase.ErrTagNotFound)
}

func TestTagGorm_Popular(t *testing.T) {
	gw, gdb := dbtest.Gateway(t)
	repo := NewTagGorm(gw)
	ctx := context.Background()
	habits := seedHabits(t, gdb, seedUser(t, gdb), 5)

	counts := map[string]int{"five": 5, "two": 2, "three": 3, "one": 1, "zero": 0}
	for name, c := range counts {
		tag := &entity.Tag{Name: name, Color: entity.DefaultTagColor}
		require.NoError(t, repo.Create(ctx, tag))
		link(t, gdb, tag.ID, habits[:c]...)
	}

	top, err := repo.Popular(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "five", top[0].Name)
	assert.Equal(t, int64(5), top[0].UsageCount)
	assert.Equal(t, "three", top[1].Name)
	assert.Equal(t, "two", top[2].Name)

	all, err := repo.Popular(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "zero", all[4].Name)
	assert.Zero(t, all[4].UsageCount, "unused tags are counted as zero")
}

func TestTagGorm_HabitsForTag(t *testing.T) {
	gw, gdb := dbtest.Gateway(t)
	repo := NewTagGorm(gw)
	uc := usecase.NewTagUsecase(repo)
	ctx := context.Background()
	habits := seedHabits(t, gdb, seedUser(t, gdb), 3)
	tag := &entity.Tag{Name: "shared", Color: entity.DefaultTagColor}
	require.NoError(t, repo.Create(ctx, tag))
	link(t, gdb, tag.ID, habits[0], habits[2])

	detail, err := uc.Get(ctx, tag.ID)
	require.NoError(t, err)
	require.Len(t, detail.Habits, 2)
	assert.Equal(t, habits[0], detail.Habits[0].ID)
	assert.True(t, detail.Habits[0].IsActive)

	full, err := uc.HabitsForTag(ctx, tag.ID)
	require.NoError(t, err)
	assert.Len(t, full, 2)

	_, err = uc.HabitsForTag(ctx, missingID)
	assert.ErrorIs(t, err, usecase.ErrTagNotFound)
}

func TestTagUsecase_CreateConflictAgainstStore(t *testing.T) {
	gw, _ := dbtest.Gateway(t)
	uc := usecase.NewTagUsecase(NewTagGorm(gw))
	ctx := context.Background()

	created, err := uc.Create(ctx, "health", nil)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultTagColor, created.Color)

	_, err = uc.Create(ctx, "health", nil)
	assert.ErrorIs(t, err, usecase.ErrTagExists)
}
