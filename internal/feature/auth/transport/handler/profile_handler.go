package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"habit_backend/internal/api"
	"habit_backend/internal/domain/entity"
	"habit_backend/internal/feature/auth/transport/http/dto"
	jwtmw "habit_backend/internal/platform/jwt"
)

// ProfileUsecase はログイン中ユーザーのプロフィール操作を定義します。
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, patch entity.UserPatch) (*entity.User, error)
	DeleteAccount(ctx context.Context, userID string) error
}

// ProfileHandler は /users/me のHTTPリクエストを処理します。
type ProfileHandler struct {
	profiles ProfileUsecase
}

// NewProfileHandler はProfileHandlerの新しいインスタンスを生成します。
func NewProfileHandler(profiles ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func currentUser(c *gin.Context) (string, bool) {
	id, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Access token required"})
	}
	return id, ok
}

// Get はログイン中ユーザーのプロフィールを返します。
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		api.WriteError(c, "get profile", err, "Failed to fetch profile")
		return
	}
	c.JSON(http.StatusOK, dto.ProfileRes{User: dto.NewUserRes(user)})
}

// Update は指定されたプロフィール項目を更新します。
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "update profile", err)
		return
	}

	user, err := h.profiles.UpdateProfile(c.Request.Context(), userID, req.Patch())
	if err != nil {
		api.WriteError(c, "update profile", err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, dto.UpdateProfileRes{Message: "Profile updated successfully", User: dto.NewUserRes(user)})
}

// Delete はアカウントを削除します。
func (h *ProfileHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.profiles.DeleteAccount(c.Request.Context(), userID); err != nil {
		api.WriteError(c, "delete account", err, "Failed to delete account")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Account deleted successfully"})
}
