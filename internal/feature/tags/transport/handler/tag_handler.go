// Package handler は/tagsエンドポイントのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"habit_backend/internal/api"
	"habit_backend/internal/domain/entity"
	"habit_backend/internal/feature/tags/transport/http/dto"
)

// TagUsecase はハンドラーが依存するタグ管理のインターフェースです。
type TagUsecase interface {
	Create(ctx context.Context, name string, color *string) (*entity.Tag, error)
	Get(ctx context.Context, id string) (*entity.TagWithHabits, error)
	List(ctx context.Context) ([]entity.Tag, error)
	Update(ctx context.Context, id string, patch entity.TagPatch) (*entity.Tag, error)
	Delete(ctx context.Context, id string) error
	Popular(ctx context.Context, limit int) ([]entity.TagUsage, error)
	HabitsForTag(ctx context.Context, id string) ([]entity.Habit, error)
}

// TagHandler はタグ関連のHTTPリクエストを処理します。
type TagHandler struct {
	uc TagUsecase
}

// NewTagHandler はTagHandlerを生成します。
func NewTagHandler(uc TagUsecase) *TagHandler {
	return &TagHandler{uc: uc}
}

func bindID(c *gin.Context, op string) (string, bool) {
	var uri dto.TagURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.WriteBindError(c, op, err)
		return "", false
	}
	return uri.ID, true
}

// List はGET /tagsで全タグを返します。
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.uc.List(c.Request.Context())
	if err != nil {
		api.WriteError(c, "list tags", err, "Failed to fetch tags")
		return
	}
	c.JSON(http.StatusOK, dto.NewTagsRes(tags))
}

// Popular はGET /tags/popular?limit=で人気タグを返します。
func (h *TagHandler) Popular(c *gin.Context) {
	var q dto.PopularQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		api.WriteBindError(c, "popular tags", err)
		return
	}
	usages, err := h.uc.Popular(c.Request.Context(), q.Limit)
	if err != nil {
		api.WriteError(c, "popular tags", err, "Failed to fetch popular tags")
		return
	}
	c.JSON(http.StatusOK, dto.NewPopularRes(usages))
}

// Get はGET /tags/:idでタグの詳細を返します。
func (h *TagHandler) Get(c *gin.Context) {
	id, ok := bindID(c, "get tag")
	if !ok {
		return
	}
	tag, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, "get tag", err, "Failed to fetch tag")
		return
	}
	c.JSON(http.StatusOK, dto.TagEnvelope{Tag: dto.NewTagDetailRes(tag)})
}

// Create はPOST /tagsでタグを作成します。
func (h *TagHandler) Create(c *gin.Context) {
	var req dto.CreateTagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "create tag", err)
		return
	}
	tag, err := h.uc.Create(c.Request.Context(), req.Name, req.Color)
	if err != nil {
		api.WriteError(c, "create tag", err, "Failed to create tag")
		return
	}
	c.JSON(http.StatusCreated, dto.TagEnvelope{Message: "Tag created successfully", Tag: dto.NewTagRes(*tag)})
}

// Update はPUT /tags/:idでタグを更新します。
func (h *TagHandler) Update(c *gin.Context) {
	id, ok := bindID(c, "update tag")
	if !ok {
		return
	}
	var req dto.UpdateTagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "update tag", err)
		return
	}
	tag, err := h.uc.Update(c.Request.Context(), id, req.Patch())
	if err != nil {
		api.WriteError(c, "update tag", err, "Failed to update tag")
		return
	}
	c.JSON(http.StatusOK, dto.TagEnvelope{Message: "Tag updated successfully", Tag: dto.NewTagRes(*tag)})
}

// Delete はDELETE /tags/:idでタグを削除します。
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := bindID(c, "delete tag")
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		api.WriteError(c, "delete tag", err, "Failed to delete tag")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Tag deleted successfully"})
}

// Habits はGET /tags/:id/habitsでタグが付いた習慣を返します。
func (h *TagHandler) Habits(c *gin.Context) {
	id, ok := bindID(c, "tag habits")
	if !ok {
		return
	}
	habits, err := h.uc.HabitsForTag(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, "tag habits", err, "Failed to fetch habits for tag")
		return
	}
	c.JSON(http.StatusOK, dto.NewTaggedHabitsRes(habits))
}
