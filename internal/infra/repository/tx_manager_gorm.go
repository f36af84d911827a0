package repository

import (
	"context"

	repo "clothesmanager/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	materials repo.MaterialRepository
	orders    repo.OrderRepository
	stores    repo.StoreRepository
	sizes     repo.SizeRepository
	users     repo.UserRepository
}

func (r *txReposGorm) Materials() repo.MaterialRepository { return r.materials }
func (r *txReposGorm) Orders() repo.OrderRepository       { return r.orders }
func (r *txReposGorm) Stores() repo.StoreRepository       { return r.stores }
func (r *txReposGorm) Sizes() repo.SizeRepository         { return r.sizes }
func (r *txReposGorm) Users() repo.UserRepository         { return r.users }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			materials: NewMaterialGormRepository(tx),
			orders:    NewOrderGormRepository(tx),
			stores:    NewStoreGormRepository(tx),
			sizes:     NewSizeGormRepository(tx),
			users:     NewUserGormRepository(tx),
		}
		return fn(r)
	})
}
