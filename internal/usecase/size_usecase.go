package usecase

import (
	"context"
	"net/http"
	"strings"

	"clothesmanager/internal/domain/model"
	repo "clothesmanager/internal/repository"
)

type SizeUsecase struct {
	sizeRepo repo.SizeRepository
}

// DI
func NewSizeUsecase(sizeRepo repo.SizeRepository) *SizeUsecase {
	return &SizeUsecase{sizeRepo: sizeRepo}
}

func (u *SizeUsecase) FindByID(ctx context.Context, id int64) (model.Size, error) {
	if id <= 0 {
		return model.Size{}, NewHTTPError(http.StatusBadRequest, "INVALID_ID")
	}

	s, err := u.sizeRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Size{}, NewHTTPError(http.StatusNotFound, "SIZE_NOT_FOUND")
	}
	if err != nil {
		return model.Size{}, NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
	}
	return s, nil
}

func (u *SizeUsecase) FindAll(ctx context.Context) ([]model.Size, error) {
	items, err := u.sizeRepo.FindAll(ctx)
	if err != nil {
		return []model.Size{}, NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
	}
	return items, nil
}

// Save は名前の重複を許さない。sizeは全storeで共有される。
func (u *SizeUsecase) Save(ctx context.Context, name string) (model.Size, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Size{}, NewHTTPError(http.StatusBadRequest, "NAME_REQUIRED")
	}

	exists, err := u.sizeRepo.ExistsByName(ctx, name)
	if err != nil {
		return model.Size{}, NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
	}
	if exists {
		return model.Size{}, NewHTTPError(http.StatusConflict, "SIZE_ALREADY_EXISTS")
	}

	created, err := u.sizeRepo.Create(ctx, model.Size{Name: name})
	if err != nil {
		return model.Size{}, NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
	}
	return created, nil
}
