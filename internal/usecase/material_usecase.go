package usecase

import (
	"context"
	"net/http"
	"strings"

	"clothesmanager/internal/domain/model"
	repo "clothesmanager/internal/repository"

	"go.uber.org/zap"
)

type MaterialUsecase struct {
	tx     repo.TransactionManager
	logger *zap.Logger
}

// DI
func NewMaterialUsecase(tx repo.TransactionManager, logger *zap.Logger) *MaterialUsecase {
	return &MaterialUsecase{tx: tx, logger: logger}
}

type SaveMaterialInput struct {
	Text     string
	Quantity int
	SizeID   int64
	StoreID  int64
}

type EditMaterialInput struct {
	Text     string
	Quantity int
	SizeID   int64
}

type DistributeMaterialInput struct {
	MaterialID      int64
	ReceiverStoreID int64
	Quantity        int
}

type ListMaterialsInput struct {
	Page    int
	Limit   int
	StoreID *int64
	Text    string
	SizeID  *int64
}

type FindMaterialsInput struct {
	StoreID *int64
	Text    string
	SizeID  *int64
}

type MaterialOutput struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	Quantity   int    `json:"quantity"`
	SizeID     int64  `json:"size_id"`
	SizeName   string `json:"size_name"`
	StoreID    int64  `json:"store_id"`
	StoreTitle string `json:"store_title"`
}

type MaterialPageOutput struct {
	Items []MaterialOutput `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

func toMaterialOutput(m model.Material) MaterialOutput {
	return MaterialOutput{
		ID:         m.ID,
		Text:       m.Text,
		Quantity:   m.Quantity,
		SizeID:     m.SizeID,
		SizeName:   m.Size.Name,
		StoreID:    m.StoreID,
		StoreTitle: m.Store.Title,
	}
}

// Save は新しいmaterialを登録する。(text, size, store)が既にあれば409。
func (u *MaterialUsecase) Save(ctx context.Context, in SaveMaterialInput) (MaterialOutput, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return MaterialOutput{}, NewHTTPError(http.StatusBadRequest, "TEXT_REQUIRED")
	}
	if in.Quantity < 0 {
		return MaterialOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_QUANTITY")
	}
	if in.SizeID <= 0 || in.StoreID <= 0 {
		return MaterialOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_REFERENCE")
	}

	u.logger.Info("saving new material", zap.String("text", text), zap.Int64("store_id", in.StoreID))

	var out MaterialOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		exists, err := r.Materials().ExistsByTextSizeStore(ctx, text, in.SizeID, in.StoreID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		if exists {
			return NewHTTPError(http.StatusConflict, "MATERIAL_ALREADY_EXISTS")
		}

		size, err := r.Sizes().FindByID(ctx, in.SizeID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "SIZE_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		store, err := r.Stores().FindByID(ctx, in.StoreID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "STORE_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		created, err := r.Materials().Create(ctx, model.Material{
			Text:     text,
			Quantity: in.Quantity,
			SizeID:   in.SizeID,
			StoreID:  in.StoreID,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		created.Size = size
		created.Store = store
		out = toMaterialOutput(created)
		return nil
	})

	if err != nil {
		return MaterialOutput{}, err
	}
	return out, nil
}

// Edit はtext/quantity/sizeを変更する。storeは変更不可。
// 重複チェックは自分自身を除外して行う。
func (u *MaterialUsecase) Edit(ctx context.Context, id int64, in EditMaterialInput) (MaterialOutput, error) {
	if id <= 0 {
		return MaterialOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_ID")
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return MaterialOutput{}, NewHTTPError(http.StatusBadRequest, "TEXT_REQUIRED")
	}
	if in.Quantity < 0 {
		return MaterialOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_QUANTITY")
	}
	if in.SizeID <= 0 {
		return MaterialOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_REFERENCE")
	}

	var out MaterialOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		m, err := r.Materials().FindByID(ctx, id)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "MATERIAL_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		dup, err := r.Materials().ExistsByTextSizeStoreExcluding(ctx, text, in.SizeID, m.StoreID, id)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		if dup {
			return NewHTTPError(http.StatusConflict, "MATERIAL_ALREADY_EXISTS")
		}

		size, err := r.Sizes().FindByID(ctx, in.SizeID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "SIZE_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		m.Text = text
		m.Quantity = in.Quantity
		m.SizeID = in.SizeID
		if err := r.Materials().Update(ctx, m); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		m.Size = size
		out = toMaterialOutput(m)
		return nil
	})

	if err != nil {
		return MaterialOutput{}, err
	}
	return out, nil
}

// Delete は物理削除。orderが参照しているmaterialは消せない。
func (u *MaterialUsecase) Delete(ctx context.Context, actor Actor, id int64) error {
	if err := Authorize(actor, model.RoleSuperAdmin); err != nil {
		return err
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "INVALID_ID")
	}

	u.logger.Info("deleting material", zap.Int64("material_id", id), zap.String("actor", actor.Username))

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Materials().FindByID(ctx, id); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "MATERIAL_NOT_FOUND")
			}
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		hasOrders, err := r.Orders().ExistsByMaterialID(ctx, id)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		if hasOrders {
			return NewHTTPError(http.StatusConflict, "MATERIAL_HAS_ORDERS")
		}

		if err := r.Materials().Delete(ctx, id); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		return nil
	})
}

func (u *MaterialUsecase) FindByID(ctx context.Context, id int64) (MaterialOutput, error) {
	if id <= 0 {
		return MaterialOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_ID")
	}

	var out MaterialOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		m, err := r.Materials().FindByID(ctx, id)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "MATERIAL_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		out = toMaterialOutput(m)
		return nil
	})

	if err != nil {
		return MaterialOutput{}, err
	}
	return out, nil
}

// FindByStoreID はstore単位の一覧。LOCAL_ADMINは自分のstore以外を見れない。
func (u *MaterialUsecase) FindByStoreID(ctx context.Context, actor Actor, storeID int64) ([]MaterialOutput, error) {
	if storeID <= 0 {
		return []MaterialOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_ID")
	}

	scope, err := ResolveScope(actor)
	if err != nil {
		return []MaterialOutput{}, err
	}
	if !scope.CanAccessStore(storeID) {
		return []MaterialOutput{}, NewHTTPError(http.StatusForbidden, "ACCESS_DENIED")
	}

	var outs []MaterialOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, err := r.Materials().FindByStoreID(ctx, storeID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		outs = make([]MaterialOutput, 0, len(items))
		for _, m := range items {
			outs = append(outs, toMaterialOutput(m))
		}
		return nil
	})

	if err != nil {
		return []MaterialOutput{}, err
	}
	return outs, nil
}

// FindAll はページング無しのフィルタ付き一覧。LOCAL_ADMINはstore指定を
// 無視して自分のstoreに強制する。
func (u *MaterialUsecase) FindAll(ctx context.Context, actor Actor, in FindMaterialsInput) ([]MaterialOutput, error) {
	scope, err := ResolveScope(actor)
	if err != nil {
		return []MaterialOutput{}, err
	}

	var outs []MaterialOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, err := r.Materials().FindAllByFilter(ctx, repo.MaterialFilter{
			StoreID: scope.ForceStore(in.StoreID),
			Text:    in.Text,
			SizeID:  in.SizeID,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		outs = make([]MaterialOutput, 0, len(items))
		for _, m := range items {
			outs = append(outs, toMaterialOutput(m))
		}
		return nil
	})

	if err != nil {
		return []MaterialOutput{}, err
	}
	return outs, nil
}

// ListPaginated はフィルタ付きページング。LOCAL_ADMINはstore指定を
// 無視して自分のstoreに強制する。
func (u *MaterialUsecase) ListPaginated(ctx context.Context, actor Actor, in ListMaterialsInput) (MaterialPageOutput, error) {
	if in.Page < 1 {
		return MaterialPageOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_PAGE")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return MaterialPageOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_LIMIT")
	}

	scope, err := ResolveScope(actor)
	if err != nil {
		return MaterialPageOutput{}, err
	}

	var out MaterialPageOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, total, err := r.Materials().List(ctx, repo.MaterialListFilter{
			Page:    in.Page,
			Limit:   in.Limit,
			StoreID: scope.ForceStore(in.StoreID),
			Text:    in.Text,
			SizeID:  in.SizeID,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		outs := make([]MaterialOutput, 0, len(items))
		for _, m := range items {
			outs = append(outs, toMaterialOutput(m))
		}
		out = MaterialPageOutput{Items: outs, Total: total, Page: in.Page, Limit: in.Limit}
		return nil
	})

	if err != nil {
		return MaterialPageOutput{}, err
	}
	return out, nil
}

// Distribute はsource storeから受け取りstoreへ数量を移す。
// 受け取り側に同じ(text, size)のmaterialがあれば積み増し、なければ新規作成。
// 減算と加算は同一トランザクション内で、関係する行をid昇順でロックして行う。
// 逆方向の同時配布が互いのロックを待ち合わないようにするため。
func (u *MaterialUsecase) Distribute(ctx context.Context, actor Actor, in DistributeMaterialInput) (MaterialOutput, error) {
	if err := Authorize(actor, model.RoleSuperAdmin); err != nil {
		return MaterialOutput{}, err
	}
	if in.Quantity < 1 {
		return MaterialOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_QUANTITY")
	}

	u.logger.Info("distributing material",
		zap.Int64("material_id", in.MaterialID),
		zap.Int64("receiver_store_id", in.ReceiverStoreID),
		zap.Int("quantity", in.Quantity))

	var out MaterialOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// ロック順を決めるため、まずロック無しで読む
		probe, err := r.Materials().FindByID(ctx, in.MaterialID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "MATERIAL_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		if probe.Quantity < in.Quantity {
			return NewHTTPError(http.StatusConflict, "INSUFFICIENT_QUANTITY")
		}

		receiver, err := r.Stores().FindByID(ctx, in.ReceiverStoreID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "STORE_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		existing, found, err := r.Materials().FindByTextSizeStore(ctx, probe.Text, probe.SizeID, receiver.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		var source, target model.Material

		lockSource := func() error {
			m, lockErr := r.Materials().FindByIDForUpdate(ctx, probe.ID)
			if lockErr == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "MATERIAL_NOT_FOUND")
			}
			if lockErr != nil {
				return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
			}
			source = m
			return nil
		}
		lockTarget := func() error {
			m, lockErr := r.Materials().FindByIDForUpdate(ctx, existing.ID)
			if lockErr == repo.ErrNotFound {
				// ロック待ちの間に消えていたら新規作成に切り替える
				found = false
				return nil
			}
			if lockErr != nil {
				return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
			}
			target = m
			return nil
		}

		// id昇順でロックを取る
		if found && existing.ID < probe.ID {
			if err := lockTarget(); err != nil {
				return err
			}
			if err := lockSource(); err != nil {
				return err
			}
		} else {
			if err := lockSource(); err != nil {
				return err
			}
			if found {
				if err := lockTarget(); err != nil {
					return err
				}
			}
		}

		// ロック確定後の値であらためて在庫を確認する
		if source.Quantity < in.Quantity {
			return NewHTTPError(http.StatusConflict, "INSUFFICIENT_QUANTITY")
		}

		if found {
			target.Quantity += in.Quantity
			if err := r.Materials().UpdateQuantity(ctx, target.ID, target.Quantity); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
			}
			u.logger.Info("added units to existing material",
				zap.Int64("target_material_id", target.ID),
				zap.Int("new_total", target.Quantity))
		} else {
			target, err = r.Materials().Create(ctx, model.Material{
				Text:     source.Text,
				Quantity: in.Quantity,
				SizeID:   source.SizeID,
				StoreID:  receiver.ID,
			})
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
			}
			u.logger.Info("created new material in receiver store",
				zap.Int64("target_material_id", target.ID),
				zap.String("store_title", receiver.Title))
		}

		source.Quantity -= in.Quantity
		if err := r.Materials().UpdateQuantity(ctx, source.ID, source.Quantity); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		size, err := r.Sizes().FindByID(ctx, target.SizeID)
		if err != nil && err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		target.Size = size
		target.Store = receiver
		out = toMaterialOutput(target)
		return nil
	})

	if err != nil {
		return MaterialOutput{}, err
	}
	return out, nil
}
