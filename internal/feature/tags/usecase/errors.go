package usecase

import "habit_backend/internal/domain"

// タグ操作で返されるエラーです。メッセージはそのままレスポンスに使われます。
var (
	// ErrTagNotFound はタグが存在しないことを示します。
	ErrTagNotFound = domain.NotFound("Tag not found")
	// ErrTagExists は同じ名前のタグが既に存在することを示します。
	ErrTagExists       = domain.Conflict("Tag with this name already exists")
	ErrTagNameRequired = domain.Validation("name is required")
	ErrTagNameTooLong  = domain.Validation("name must be at most 50 characters")
	// ErrInvalidColor は色が#RRGGBB形式でないことを示します。
	ErrInvalidColor = domain.Validation("color must be a hex color like #1A2B3C")
)
