package usecase

import (
	"context"
	"net/http"
	"strings"

	"clothesmanager/internal/domain/model"
	repo "clothesmanager/internal/repository"

	"go.uber.org/zap"
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type UserUsecase struct {
	tx     repo.TransactionManager
	hasher PasswordHasher
	logger *zap.Logger
}

// DI
func NewUserUsecase(tx repo.TransactionManager, hasher PasswordHasher, logger *zap.Logger) *UserUsecase {
	return &UserUsecase{tx: tx, hasher: hasher, logger: logger}
}

type CreateUserInput struct {
	Username string
	Password string
	Role     model.Role
	StoreID  *int64
}

type EditUserInput struct {
	Role    model.Role
	StoreID *int64
}

type UserOutput struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	Role       model.Role `json:"role"`
	StoreID    *int64     `json:"store_id"`
	StoreTitle string     `json:"store_title,omitempty"`
}

func toUserOutput(u model.User) UserOutput {
	out := UserOutput{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		StoreID:  u.StoreID,
	}
	if u.Store != nil {
		out.StoreTitle = u.Store.Title
	}
	return out
}

// Create はユーザーを登録する。LOCAL_ADMINは自分のstoreにしか作れない。
func (u *UserUsecase) Create(ctx context.Context, actor Actor, in CreateUserInput) (UserOutput, error) {
	if err := Authorize(actor, model.RoleSuperAdmin, model.RoleLocalAdmin); err != nil {
		return UserOutput{}, err
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "USERNAME_REQUIRED")
	}
	if len(in.Password) < 8 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "PASSWORD_TOO_SHORT")
	}
	if !in.Role.IsValid() {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_ROLE")
	}

	storeID := in.StoreID
	if actor.Role == model.RoleLocalAdmin {
		// 自分のstoreに強制
		storeID = actor.StoreID
		if in.Role == model.RoleSuperAdmin {
			return UserOutput{}, NewHTTPError(http.StatusForbidden, "ACCESS_DENIED")
		}
	}
	if in.Role == model.RoleLocalAdmin && storeID == nil {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "STORE_REQUIRED")
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "HASH_ERROR")
	}

	var out UserOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		taken, err := r.Users().ExistsByUsername(ctx, username)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		if taken {
			return NewHTTPError(http.StatusConflict, "USER_ALREADY_EXISTS")
		}

		if storeID != nil {
			ok, err := r.Stores().ExistsByID(ctx, *storeID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
			}
			if !ok {
				return NewHTTPError(http.StatusNotFound, "STORE_NOT_FOUND")
			}
		}

		created, err := r.Users().Create(ctx, model.User{
			Username:     username,
			PasswordHash: hash,
			Role:         in.Role,
			StoreID:      storeID,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		out = toUserOutput(created)
		return nil
	})

	if err != nil {
		return UserOutput{}, err
	}

	u.logger.Info("user created", zap.String("username", username), zap.String("role", string(in.Role)))
	return out, nil
}

func (u *UserUsecase) FindByUsername(ctx context.Context, username string) (UserOutput, error) {
	if strings.TrimSpace(username) == "" {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "USERNAME_REQUIRED")
	}

	var out UserOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByUsername(ctx, username)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "USER_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		out = toUserOutput(user)
		return nil
	})

	if err != nil {
		return UserOutput{}, err
	}
	return out, nil
}

// FindAll はSUPER_ADMINには全ユーザー、LOCAL_ADMINには自store分だけ。
func (u *UserUsecase) FindAll(ctx context.Context, actor Actor) ([]UserOutput, error) {
	scope, err := ResolveScope(actor)
	if err != nil {
		return []UserOutput{}, err
	}

	var outs []UserOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var users []model.User
		var err error
		if scope.StoreID == nil {
			users, err = r.Users().FindAll(ctx)
		} else {
			users, err = r.Users().FindByStoreID(ctx, *scope.StoreID)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		outs = make([]UserOutput, 0, len(users))
		for _, user := range users {
			outs = append(outs, toUserOutput(user))
		}
		return nil
	})

	if err != nil {
		return []UserOutput{}, err
	}
	return outs, nil
}

// Edit はrole/store割当を変更する。SUPER_ADMINのユーザーには触れない。
func (u *UserUsecase) Edit(ctx context.Context, actor Actor, id int64, in EditUserInput) (UserOutput, error) {
	if err := Authorize(actor, model.RoleSuperAdmin); err != nil {
		return UserOutput{}, err
	}
	if id <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_ID")
	}
	if !in.Role.IsValid() {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_ROLE")
	}

	var out UserOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, id)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "USER_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		if user.Role == model.RoleSuperAdmin {
			return NewHTTPError(http.StatusForbidden, "CANNOT_MODIFY_SUPER_ADMIN")
		}

		if in.StoreID != nil {
			ok, err := r.Stores().ExistsByID(ctx, *in.StoreID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
			}
			if !ok {
				return NewHTTPError(http.StatusNotFound, "STORE_NOT_FOUND")
			}
		}

		user.Role = in.Role
		user.StoreID = in.StoreID
		if err := r.Users().Update(ctx, user); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		user.Store = nil
		out = toUserOutput(user)
		return nil
	})

	if err != nil {
		return UserOutput{}, err
	}
	return out, nil
}

// Delete はSUPER_ADMINのユーザーを消せない。orderを持つユーザーも消せない。
func (u *UserUsecase) Delete(ctx context.Context, actor Actor, id int64) error {
	if err := Authorize(actor, model.RoleSuperAdmin); err != nil {
		return err
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "INVALID_ID")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, id)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "USER_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		if user.Role == model.RoleSuperAdmin {
			return NewHTTPError(http.StatusForbidden, "CANNOT_DELETE_SUPER_ADMIN")
		}

		hasOrders, err := r.Orders().ExistsByUserID(ctx, id)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		if hasOrders {
			return NewHTTPError(http.StatusConflict, "USER_HAS_ORDERS")
		}

		if err := r.Users().Delete(ctx, id); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		u.logger.Info("user deleted", zap.Int64("user_id", id), zap.String("actor", actor.Username))
		return nil
	})
}
