// Package di はリポジトリ、ユースケース、ハンドラーを組み立てます。
package di

import (
	authadapters "habit_backend/internal/feature/auth/adapters"
	authhandler "habit_backend/internal/feature/auth/transport/handler"
	authusecase "habit_backend/internal/feature/auth/usecase"
	habitadapters "habit_backend/internal/feature/habits/adapters"
	habithandler "habit_backend/internal/feature/habits/transport/handler"
	habitusecase "habit_backend/internal/feature/habits/usecase"
	tagadapters "habit_backend/internal/feature/tags/adapters"
	taghandler "habit_backend/internal/feature/tags/transport/handler"
	tagusecase "habit_backend/internal/feature/tags/usecase"
	"habit_backend/internal/platform/config"
	"habit_backend/internal/platform/db"
	jwtmw "habit_backend/internal/platform/jwt"
	"habit_backend/internal/platform/password"
)

// Handlers はルーターに登録する全HTTPハンドラーです。
type Handlers struct {
	Auth    *authhandler.AuthHandler
	Profile *authhandler.ProfileHandler
	Habits  *habithandler.HabitHandler
	Tags    *taghandler.TagHandler

	JWTSecret   string
	Revocations jwtmw.RevocationChecker
}

// NewHandlers はgwを使って各ハンドラーを組み立てます。
func NewHandlers(cfg *config.Config, gw *db.Gateway, revocations RevocationStore) *Handlers {
	// Repository
	userRepo := authadapters.NewUserGorm(gw)
	habitRepo := habitadapters.NewHabitGorm(gw)
	tagRepo := tagadapters.NewTagGorm(gw)

	// Usecase
	hasher := password.NewHasher(cfg.Bcrypt.Rounds)
	tokens := jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	authUC := authusecase.NewAuthUsecase(userRepo, hasher, tokens, revocations)
	profileUC := authusecase.NewProfileUsecase(userRepo)
	habitUC := habitusecase.NewHabitUsecase(gw, habitRepo)
	tagUC := tagusecase.NewTagUsecase(tagRepo)

	// Handler
	return &Handlers{
		Auth:        authhandler.NewAuthHandler(authUC),
		Profile:     authhandler.NewProfileHandler(profileUC),
		Habits:      habithandler.NewHabitHandler(habitUC),
		Tags:        taghandler.NewTagHandler(tagUC),
		JWTSecret:   cfg.JWT.Secret,
		Revocations: revocations,
	}
}
