package repository

import (
	"context"

	"clothesmanager/internal/domain/model"
)

type StoreRepository interface {
	FindByID(ctx context.Context, id int64) (model.Store, error)
	FindAll(ctx context.Context) ([]model.Store, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)

	Create(ctx context.Context, s model.Store) (model.Store, error)
	Update(ctx context.Context, s model.Store) error
	Delete(ctx context.Context, id int64) error
}
