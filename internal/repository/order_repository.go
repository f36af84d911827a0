package repository

import (
	"context"

	"clothesmanager/internal/domain/model"
)

type OrderListFilter struct {
	Page         int
	Limit        int
	StoreID      *int64
	MaterialText string
	SizeName     string
}

type OrderRepository interface {
	FindByID(ctx context.Context, id int64) (model.Order, error)
	FindAll(ctx context.Context) ([]model.Order, error)
	FindByStoreID(ctx context.Context, storeID int64) ([]model.Order, error)

	// materialのtextとsizeのnameで部分一致検索するためJOINする
	List(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)

	ExistsByMaterialID(ctx context.Context, materialID int64) (bool, error)
	ExistsByStoreID(ctx context.Context, storeID int64) (bool, error)
	ExistsByUserID(ctx context.Context, userID int64) (bool, error)
	Count(ctx context.Context, storeID *int64) (int64, error)

	Create(ctx context.Context, o model.Order) (model.Order, error)
	Update(ctx context.Context, o model.Order) error
	Delete(ctx context.Context, id int64) error
}
