package usecase

import (
	"context"
	"net/http"
	"strings"

	"clothesmanager/internal/domain/model"
	repo "clothesmanager/internal/repository"

	"go.uber.org/zap"
)

type StoreUsecase struct {
	tx     repo.TransactionManager
	logger *zap.Logger
}

// DI
func NewStoreUsecase(tx repo.TransactionManager, logger *zap.Logger) *StoreUsecase {
	return &StoreUsecase{tx: tx, logger: logger}
}

type SaveStoreInput struct {
	Title   string
	Address string
	Status  model.StoreStatus
}

func validateStoreInput(in SaveStoreInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return NewHTTPError(http.StatusBadRequest, "TITLE_REQUIRED")
	}
	if strings.TrimSpace(in.Address) == "" {
		return NewHTTPError(http.StatusBadRequest, "ADDRESS_REQUIRED")
	}
	if !in.Status.IsValid() {
		return NewHTTPError(http.StatusBadRequest, "INVALID_STATUS")
	}
	return nil
}

func (u *StoreUsecase) Save(ctx context.Context, actor Actor, in SaveStoreInput) (model.Store, error) {
	if err := Authorize(actor, model.RoleSuperAdmin); err != nil {
		return model.Store{}, err
	}
	if err := validateStoreInput(in); err != nil {
		return model.Store{}, err
	}

	var out model.Store

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		created, err := r.Stores().Create(ctx, model.Store{
			Title:   strings.TrimSpace(in.Title),
			Address: strings.TrimSpace(in.Address),
			Status:  in.Status,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		out = created
		return nil
	})

	if err != nil {
		return model.Store{}, err
	}

	u.logger.Info("store saved", zap.Int64("store_id", out.ID), zap.String("title", out.Title))
	return out, nil
}

func (u *StoreUsecase) FindByID(ctx context.Context, actor Actor, id int64) (model.Store, error) {
	if err := Authorize(actor, model.RoleSuperAdmin, model.RoleLocalAdmin); err != nil {
		return model.Store{}, err
	}
	if id <= 0 {
		return model.Store{}, NewHTTPError(http.StatusBadRequest, "INVALID_ID")
	}

	var out model.Store

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Stores().FindByID(ctx, id)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "STORE_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		out = s
		return nil
	})

	if err != nil {
		return model.Store{}, err
	}
	return out, nil
}

// FindAll はSUPER_ADMINには全store、LOCAL_ADMINには自分のstoreだけを返す。
func (u *StoreUsecase) FindAll(ctx context.Context, actor Actor) ([]model.Store, error) {
	scope, err := ResolveScope(actor)
	if err != nil {
		return []model.Store{}, err
	}

	var outs []model.Store

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if scope.StoreID == nil {
			items, err := r.Stores().FindAll(ctx)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
			}
			outs = items
			return nil
		}

		s, err := r.Stores().FindByID(ctx, *scope.StoreID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "STORE_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		outs = []model.Store{s}
		return nil
	})

	if err != nil {
		return []model.Store{}, err
	}
	return outs, nil
}

func (u *StoreUsecase) Edit(ctx context.Context, actor Actor, id int64, in SaveStoreInput) (model.Store, error) {
	if err := Authorize(actor, model.RoleSuperAdmin); err != nil {
		return model.Store{}, err
	}
	if id <= 0 {
		return model.Store{}, NewHTTPError(http.StatusBadRequest, "INVALID_ID")
	}
	if err := validateStoreInput(in); err != nil {
		return model.Store{}, err
	}

	var out model.Store

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Stores().FindByID(ctx, id)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "STORE_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		s.Title = strings.TrimSpace(in.Title)
		s.Address = strings.TrimSpace(in.Address)
		s.Status = in.Status
		if err := r.Stores().Update(ctx, s); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		out = s
		return nil
	})

	if err != nil {
		return model.Store{}, err
	}

	u.logger.Info("store edited", zap.Int64("store_id", id))
	return out, nil
}

func (u *StoreUsecase) UpdateStatus(ctx context.Context, actor Actor, id int64, status model.StoreStatus) (model.Store, error) {
	if err := Authorize(actor, model.RoleSuperAdmin); err != nil {
		return model.Store{}, err
	}
	if !status.IsValid() {
		return model.Store{}, NewHTTPError(http.StatusBadRequest, "INVALID_STATUS")
	}

	var out model.Store

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Stores().FindByID(ctx, id)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "STORE_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		s.Status = status
		if err := r.Stores().Update(ctx, s); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		out = s
		return nil
	})

	if err != nil {
		return model.Store{}, err
	}

	u.logger.Info("store status changed",
		zap.Int64("store_id", id),
		zap.String("status", string(status)),
		zap.String("actor", actor.Username))
	return out, nil
}

// Delete はmaterial/order/userが1つでも紐づくstoreを消せない。
// セットアップ時に作られたstore（system entity）も保護される。
func (u *StoreUsecase) Delete(ctx context.Context, actor Actor, id int64) error {
	if err := Authorize(actor, model.RoleSuperAdmin); err != nil {
		return err
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "INVALID_ID")
	}

	u.logger.Info("attempting to delete store", zap.Int64("store_id", id))

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Stores().FindByID(ctx, id)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "STORE_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		if s.IsSystemEntity {
			return NewHTTPError(http.StatusConflict, "SYSTEM_STORE_PROTECTED")
		}

		hasMaterials, err := r.Materials().ExistsByStoreID(ctx, id)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		if hasMaterials {
			return NewHTTPError(http.StatusConflict, "STORE_DELETE_HAS_MATERIALS")
		}

		hasOrders, err := r.Orders().ExistsByStoreID(ctx, id)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		if hasOrders {
			return NewHTTPError(http.StatusConflict, "STORE_DELETE_HAS_ORDERS")
		}

		hasUsers, err := r.Users().ExistsByStoreID(ctx, id)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		if hasUsers {
			return NewHTTPError(http.StatusConflict, "STORE_DELETE_HAS_USERS")
		}

		if err := r.Stores().Delete(ctx, id); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		return nil
	})
}
