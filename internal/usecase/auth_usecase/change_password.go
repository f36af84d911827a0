package auth

import (
	"context"
	"net/http"

	"clothesmanager/internal/repository"
	"clothesmanager/internal/usecase"
)

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

type ChangePasswordUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	hasher   usecase.PasswordHasher
}

// DI
func NewChangePasswordUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	hasher usecase.PasswordHasher,
) *ChangePasswordUsecase {
	return &ChangePasswordUsecase{
		userRepo: userRepo,
		verifier: verifier,
		hasher:   hasher,
	}
}

// 現在のパスワードが合っているときだけ更新する
func (u *ChangePasswordUsecase) Execute(ctx context.Context, actor usecase.Actor, in ChangePasswordInput) error {
	if len(in.NewPassword) < 8 {
		return usecase.NewHTTPError(http.StatusBadRequest, "PASSWORD_TOO_SHORT")
	}

	user, err := u.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		if err == repository.ErrNotFound {
			return usecase.NewHTTPError(http.StatusNotFound, "USER_NOT_FOUND")
		}
		return usecase.NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
	}

	if !u.verifier.Verify(in.CurrentPassword, user.PasswordHash) {
		return usecase.NewHTTPError(http.StatusBadRequest, "WRONG_CURRENT_PASSWORD")
	}

	hash, err := u.hasher.Hash(in.NewPassword)
	if err != nil {
		return usecase.NewHTTPError(http.StatusInternalServerError, "HASH_ERROR")
	}

	user.PasswordHash = hash
	if err := u.userRepo.Update(ctx, user); err != nil {
		return usecase.NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
	}
	return nil
}
