package dto

import "habit_backend/internal/domain/entity"

// UpdateProfileReq はPUT /users/meのリクエストボディです。省略した項目は変更しません。
type UpdateProfileReq struct {
	Username  *string `json:"username"  binding:"omitempty,min=3,max=50"`
	FirstName *string `json:"firstName" binding:"omitempty,max=50"`
	LastName  *string `json:"lastName"  binding:"omitempty,max=50"`
}

// Patch はリクエストをentity.UserPatchに変換します。
func (r UpdateProfileReq) Patch() entity.UserPatch {
	return entity.UserPatch{
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// ProfileRes はユーザー1件を包むレスポンスです。
type ProfileRes struct {
	User UserRes `json:"user"`
}

// UpdateProfileRes はプロフィール更新成功時のレスポンスです。
type UpdateProfileRes struct {
	Message string  `json:"message"`
	User    UserRes `json:"user"`
}
