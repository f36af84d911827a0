package auth

import (
	"context"
	"net/http"
	"strings"

	"clothesmanager/internal/domain/model"
	repo "clothesmanager/internal/repository"
	"clothesmanager/internal/usecase"

	"go.uber.org/zap"
)

type SetupInput struct {
	StoreTitle   string
	StoreAddress string
	Username     string
	Password     string
}

type SetupOutput struct {
	StoreID int64 `json:"store_id"`
	UserID  int64 `json:"user_id"`
}

// SetupUsecase は初回起動時にsystem storeとSUPER_ADMINを作る。
// 既にユーザーがいれば二度と実行できない。
type SetupUsecase struct {
	tx     repo.TransactionManager
	hasher usecase.PasswordHasher
	logger *zap.Logger
}

// DI
func NewSetupUsecase(tx repo.TransactionManager, hasher usecase.PasswordHasher, logger *zap.Logger) *SetupUsecase {
	return &SetupUsecase{tx: tx, hasher: hasher, logger: logger}
}

func (u *SetupUsecase) Execute(ctx context.Context, in SetupInput) (SetupOutput, error) {
	if strings.TrimSpace(in.StoreTitle) == "" || strings.TrimSpace(in.StoreAddress) == "" {
		return SetupOutput{}, usecase.NewHTTPError(http.StatusBadRequest, "STORE_REQUIRED")
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return SetupOutput{}, usecase.NewHTTPError(http.StatusBadRequest, "USERNAME_REQUIRED")
	}
	if len(in.Password) < 8 {
		return SetupOutput{}, usecase.NewHTTPError(http.StatusBadRequest, "PASSWORD_TOO_SHORT")
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return SetupOutput{}, usecase.NewHTTPError(http.StatusInternalServerError, "HASH_ERROR")
	}

	var out SetupOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		total, err := r.Users().Count(ctx, nil)
		if err != nil {
			return usecase.NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		if total > 0 {
			return usecase.NewHTTPError(http.StatusConflict, "ALREADY_INITIALIZED")
		}

		store, err := r.Stores().Create(ctx, model.Store{
			Title:          strings.TrimSpace(in.StoreTitle),
			Address:        strings.TrimSpace(in.StoreAddress),
			Status:         model.StoreStatusActive,
			IsSystemEntity: true,
		})
		if err != nil {
			return usecase.NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		admin, err := r.Users().Create(ctx, model.User{
			Username:     username,
			PasswordHash: hash,
			Role:         model.RoleSuperAdmin,
			StoreID:      &store.ID,
		})
		if err != nil {
			return usecase.NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		out = SetupOutput{StoreID: store.ID, UserID: admin.ID}
		return nil
	})

	if err != nil {
		return SetupOutput{}, err
	}

	u.logger.Info("initial setup completed", zap.String("username", username), zap.Int64("store_id", out.StoreID))
	return out, nil
}
