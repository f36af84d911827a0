package usecase

import (
	"context"
	"net/http"

	repo "clothesmanager/internal/repository"
)

type DashboardUsecase struct {
	tx repo.TransactionManager
}

// DI
func NewDashboardUsecase(tx repo.TransactionManager) *DashboardUsecase {
	return &DashboardUsecase{tx: tx}
}

type DashboardOutput struct {
	Materials int64 `json:"materials"`
	Orders    int64 `json:"orders"`
	Stores    int64 `json:"stores"`
	Users     int64 `json:"users"`
}

// Counts はダッシュボード用の件数。LOCAL_ADMINは自storeの件数のみ。
// 同時書き込みでもズレないよう1トランザクションでまとめて数える。
func (u *DashboardUsecase) Counts(ctx context.Context, actor Actor) (DashboardOutput, error) {
	scope, err := ResolveScope(actor)
	if err != nil {
		return DashboardOutput{}, err
	}

	var out DashboardOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		materials, err := r.Materials().Count(ctx, scope.StoreID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		orders, err := r.Orders().Count(ctx, scope.StoreID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		var stores int64
		if scope.StoreID == nil {
			stores, err = r.Stores().Count(ctx)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
			}
		} else {
			stores = 1
		}

		users, err := r.Users().Count(ctx, scope.StoreID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		out = DashboardOutput{
			Materials: materials,
			Orders:    orders,
			Stores:    stores,
			Users:     users,
		}
		return nil
	})

	if err != nil {
		return DashboardOutput{}, err
	}
	return out, nil
}
