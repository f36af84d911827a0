package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"clothesmanager/internal/domain/model"
	repo "clothesmanager/internal/repository"
	"clothesmanager/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSizeUsecase_Save_EmptyName(t *testing.T) {
	uc := usecase.NewSizeUsecase(new(SizeRepoMock))

	_, err := uc.Save(context.Background(), "  ")
	assertErrCode(t, err, http.StatusBadRequest, "NAME_REQUIRED")
}

func TestSizeUsecase_Save_DuplicateName(t *testing.T) {
	sizes := new(SizeRepoMock)
	sizes.On("ExistsByName", mock.Anything, "M").Return(true, nil)

	uc := usecase.NewSizeUsecase(sizes)

	_, err := uc.Save(context.Background(), "M")
	assertErrCode(t, err, http.StatusConflict, "SIZE_ALREADY_EXISTS")

	sizes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSizeUsecase_Save_TrimsName(t *testing.T) {
	sizes := new(SizeRepoMock)
	sizes.On("ExistsByName", mock.Anything, "XL").Return(false, nil)
	sizes.On("Create", mock.Anything, model.Size{Name: "XL"}).Return(model.Size{ID: 4, Name: "XL"}, nil)

	uc := usecase.NewSizeUsecase(sizes)

	out, err := uc.Save(context.Background(), " XL ")
	assert.NoError(t, err)
	assert.Equal(t, int64(4), out.ID)

	sizes.AssertExpectations(t)
}

func TestSizeUsecase_FindByID_NotFound(t *testing.T) {
	sizes := new(SizeRepoMock)
	sizes.On("FindByID", mock.Anything, int64(99)).Return(model.Size{}, repo.ErrNotFound)

	uc := usecase.NewSizeUsecase(sizes)

	_, err := uc.FindByID(context.Background(), 99)
	assertErrCode(t, err, http.StatusNotFound, "SIZE_NOT_FOUND")
}
