package repository

import (
	"context"

	"clothesmanager/internal/domain/model"
)

type SizeRepository interface {
	FindByID(ctx context.Context, id int64) (model.Size, error)
	FindAll(ctx context.Context) ([]model.Size, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)

	Create(ctx context.Context, s model.Size) (model.Size, error)
}
