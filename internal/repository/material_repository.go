package repository

import (
	"context"
	"errors"

	"clothesmanager/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// ページング付き検索の条件
type MaterialListFilter struct {
	Page    int
	Limit   int
	StoreID *int64
	Text    string
	SizeID  *int64
}

// ページング無し一覧の条件
type MaterialFilter struct {
	StoreID *int64
	Text    string
	SizeID  *int64
}

// materialの永続化だけを約束。
type MaterialRepository interface {
	FindByID(ctx context.Context, id int64) (model.Material, error)

	// SELECT ... FOR UPDATE。数量を読んで書く前に必ずこちらを使う。
	FindByIDForUpdate(ctx context.Context, id int64) (model.Material, error)

	FindByStoreID(ctx context.Context, storeID int64) ([]model.Material, error)
	List(ctx context.Context, f MaterialListFilter) ([]model.Material, int64, error)

	// (text, size, store)の一意チェック
	ExistsByTextSizeStore(ctx context.Context, text string, sizeID int64, storeID int64) (bool, error)
	ExistsByTextSizeStoreExcluding(ctx context.Context, text string, sizeID int64, storeID int64, excludeID int64) (bool, error)

	// 配布先storeでの同一material検索。一意制約と同じ完全一致で探す。
	FindByTextSizeStore(ctx context.Context, text string, sizeID int64, storeID int64) (model.Material, bool, error)

	// ページング無しの絞り込み一覧
	FindAllByFilter(ctx context.Context, f MaterialFilter) ([]model.Material, error)

	ExistsByStoreID(ctx context.Context, storeID int64) (bool, error)
	Count(ctx context.Context, storeID *int64) (int64, error)

	Create(ctx context.Context, m model.Material) (model.Material, error)
	Update(ctx context.Context, m model.Material) error
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	Delete(ctx context.Context, id int64) error
}
