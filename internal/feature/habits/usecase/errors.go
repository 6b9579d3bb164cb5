package usecase

import "habit_backend/internal/domain"

var (
	// ErrHabitNotFound は習慣が存在しないか、呼び出し元の所有でない場合のエラーです。
	ErrHabitNotFound = domain.NotFound("Habit not found")
	// ErrHabitTagNotFound は指定された習慣とタグの関連付けが存在しない場合のエラーです。
	ErrHabitTagNotFound = domain.NotFound("Tag is not attached to this habit")
	// ErrUnknownTag は存在しないタグIDが指定された場合のエラーです（外部キー違反）。
	ErrUnknownTag = domain.Constraint("unknown tag id")

	ErrOwnerRequired      = domain.Validation("owner id is required")
	ErrNameRequired       = domain.Validation("name is required")
	ErrNameTooLong        = domain.Validation("name must be at most 100 characters")
	ErrInvalidFrequency   = domain.Validation("frequency must be one of daily, weekly, monthly")
	ErrInvalidTargetCount = domain.Validation("targetCount must be a positive integer")
)
