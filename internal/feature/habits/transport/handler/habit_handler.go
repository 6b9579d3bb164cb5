// Package handler は習慣フィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"habit_backend/internal/api"
	"habit_backend/internal/domain/entity"
	"habit_backend/internal/feature/habits/transport/http/dto"
	"habit_backend/internal/feature/habits/usecase"
	jwtmw "habit_backend/internal/platform/jwt"
)

// HabitUsecase は習慣操作のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type HabitUsecase interface {
	Create(ctx context.Context, in usecase.CreateInput) (*entity.Habit, error)
	Get(ctx context.Context, ownerID, habitID string) (*entity.Habit, error)
	List(ctx context.Context, ownerID string) ([]entity.Habit, error)
	Update(ctx context.Context, ownerID, habitID string, in usecase.UpdateInput) (*entity.Habit, error)
	Complete(ctx context.Context, ownerID, habitID string, note *string) (*entity.Habit, error)
	Delete(ctx context.Context, ownerID, habitID string) error
	LogEntry(ctx context.Context, ownerID, habitID string, note *string, completedAt *time.Time) (*entity.Entry, error)
	AddTags(ctx context.Context, ownerID, habitID string, tagIDs []string) error
	RemoveTag(ctx context.Context, ownerID, habitID, tagID string) error
}

// HabitHandler は /habits 配下のHTTPリクエストを処理します。
type HabitHandler struct {
	uc HabitUsecase
}

// NewHabitHandler は指定されたusecaseでHabitHandlerの新しいインスタンスを生成します。
func NewHabitHandler(uc HabitUsecase) *HabitHandler {
	return &HabitHandler{uc: uc}
}

// owner は認証済みユーザーIDを取得します。取得できない場合は401を書き込みます。
func owner(c *gin.Context) (string, bool) {
	id, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Access token required"})
	}
	return id, ok
}

// target は所有者IDとパスの習慣IDを取得します。
func target(c *gin.Context, op string) (ownerID, habitID string, ok bool) {
	ownerID, ok = owner(c)
	if !ok {
		return "", "", false
	}
	var uri dto.HabitURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.WriteBindError(c, op, err)
		return "", "", false
	}
	return ownerID, uri.ID, true
}

// bindOptionalJSON は空ボディを許容してJSONをバインドします。
func bindOptionalJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// List はログイン中ユーザーの習慣一覧を返します。
//
// GET /habits
func (h *HabitHandler) List(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	habits, err := h.uc.List(c.Request.Context(), ownerID)
	if err != nil {
		api.WriteError(c, "list habits", err, "Failed to fetch habits")
		return
	}
	c.JSON(http.StatusOK, dto.NewHabitsRes(habits))
}

// Create は習慣を作成します。
//
// POST /habits
func (h *HabitHandler) Create(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	var req dto.CreateHabitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "create habit", err)
		return
	}

	habit, err := h.uc.Create(c.Request.Context(), usecase.CreateInput{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
		TargetCount: req.TargetCount,
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		api.WriteError(c, "create habit", err, "Failed to create habit")
		return
	}
	c.JSON(http.StatusCreated, dto.HabitEnvelope{Message: "Habit created successfully", Habit: dto.NewHabitRes(habit)})
}

// Get は習慣の詳細を返します。
//
// GET /habits/:id
func (h *HabitHandler) Get(c *gin.Context) {
	ownerID, habitID, ok := target(c, "get habit")
	if !ok {
		return
	}
	habit, err := h.uc.Get(c.Request.Context(), ownerID, habitID)
	if err != nil {
		api.WriteError(c, "get habit", err, "Failed to fetch habit")
		return
	}
	c.JSON(http.StatusOK, dto.HabitEnvelope{Habit: dto.NewHabitRes(habit)})
}

// Update は習慣を更新します。
//
// PUT /habits/:id
func (h *HabitHandler) Update(c *gin.Context) {
	ownerID, habitID, ok := target(c, "update habit")
	if !ok {
		return
	}
	var req dto.UpdateHabitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "update habit", err)
		return
	}

	habit, err := h.uc.Update(c.Request.Context(), ownerID, habitID, usecase.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
		TargetCount: req.TargetCount,
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		api.WriteError(c, "update habit", err, "Failed to update habit")
		return
	}
	c.JSON(http.StatusOK, dto.HabitEnvelope{Message: "Habit updated successfully", Habit: dto.NewHabitRes(habit)})
}

// Complete は習慣を完了（非アクティブ化）します。
//
// POST /habits/:id/complete
func (h *HabitHandler) Complete(c *gin.Context) {
	ownerID, habitID, ok := target(c, "complete habit")
	if !ok {
		return
	}
	var req dto.CompleteHabitReq
	if err := bindOptionalJSON(c, &req); err != nil {
		api.WriteBindError(c, "complete habit", err)
		return
	}

	habit, err := h.uc.Complete(c.Request.Context(), ownerID, habitID, req.Note)
	if err != nil {
		api.WriteError(c, "complete habit", err, "Failed to complete habit")
		return
	}
	c.JSON(http.StatusOK, dto.HabitEnvelope{Message: "Habit completed", Habit: dto.NewHabitRes(habit)})
}

// Delete は習慣を削除します。
//
// DELETE /habits/:id
func (h *HabitHandler) Delete(c *gin.Context) {
	ownerID, habitID, ok := target(c, "delete habit")
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), ownerID, habitID); err != nil {
		api.WriteError(c, "delete habit", err, "Failed to delete habit")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Habit deleted successfully"})
}

// LogEntry は習慣に記録を追加します。
//
// POST /habits/:id/entries
func (h *HabitHandler) LogEntry(c *gin.Context) {
	ownerID, habitID, ok := target(c, "log entry")
	if !ok {
		return
	}
	var req dto.LogEntryReq
	if err := bindOptionalJSON(c, &req); err != nil {
		api.WriteBindError(c, "log entry", err)
		return
	}

	entry, err := h.uc.LogEntry(c.Request.Context(), ownerID, habitID, req.Note, req.CompletedAt)
	if err != nil {
		api.WriteError(c, "log entry", err, "Failed to log habit completion")
		return
	}
	c.JSON(http.StatusCreated, dto.EntryEnvelope{Message: "Entry logged successfully", Entry: dto.NewEntryRes(*entry)})
}

// AddTags は習慣にタグを追加します。
//
// POST /habits/:id/tags
func (h *HabitHandler) AddTags(c *gin.Context) {
	ownerID, habitID, ok := target(c, "add habit tags")
	if !ok {
		return
	}
	var req dto.AddTagsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "add habit tags", err)
		return
	}
	if err := h.uc.AddTags(c.Request.Context(), ownerID, habitID, req.TagIDs); err != nil {
		api.WriteError(c, "add habit tags", err, "Failed to add tags")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Tags added successfully"})
}

// RemoveTag は習慣からタグを外します。
//
// DELETE /habits/:id/tags/:tagId
func (h *HabitHandler) RemoveTag(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	var uri dto.HabitTagURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.WriteBindError(c, "remove habit tag", err)
		return
	}
	if err := h.uc.RemoveTag(c.Request.Context(), ownerID, uri.ID, uri.TagID); err != nil {
		api.WriteError(c, "remove habit tag", err, "Failed to remove tag")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Tag removed successfully"})
}
