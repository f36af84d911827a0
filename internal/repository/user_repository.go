package repository

import (
	"context"

	"clothesmanager/internal/domain/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	FindByStoreID(ctx context.Context, storeID int64) ([]model.User, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByStoreID(ctx context.Context, storeID int64) (bool, error)
	Count(ctx context.Context, storeID *int64) (int64, error)

	Create(ctx context.Context, u model.User) (model.User, error)
	Update(ctx context.Context, u model.User) error
	Delete(ctx context.Context, id int64) error
}
