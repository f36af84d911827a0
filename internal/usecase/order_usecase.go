package usecase

import (
	"context"
	"net/http"
	"time"

	"clothesmanager/internal/domain/model"
	repo "clothesmanager/internal/repository"

	"go.uber.org/zap"
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	logger *zap.Logger
}

// DI
func NewOrderUsecase(tx repo.TransactionManager, logger *zap.Logger) *OrderUsecase {
	return &OrderUsecase{tx: tx, logger: logger}
}

type PlaceOrderInput struct {
	MaterialID  int64
	Quantity    int
	DateOfOrder time.Time
	// 空ならPENDING
	Status model.OrderStatus
}

type UpdateOrderInput struct {
	Quantity    int
	Status      model.OrderStatus
	DateOfOrder time.Time
}

type ListOrdersInput struct {
	Page         int
	Limit        int
	StoreID      *int64
	MaterialText string
	SizeName     string
}

type OrderOutput struct {
	ID           int64             `json:"id"`
	DateOfOrder  time.Time         `json:"date_of_order"`
	Quantity     int               `json:"quantity"`
	Status       model.OrderStatus `json:"status"`
	MaterialID   int64             `json:"material_id"`
	MaterialText string            `json:"material_text"`
	SizeID       int64             `json:"size_id"`
	SizeName     string            `json:"size_name"`
	StoreID      int64             `json:"store_id"`
	StoreTitle   string            `json:"store_title"`
	UserID       int64             `json:"user_id"`

	// place/update後のmaterial残量。一覧では0のまま。
	Stock int `json:"stock,omitempty"`
}

type OrderPageOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func toOrderOutput(o model.Order) OrderOutput {
	return OrderOutput{
		ID:           o.ID,
		DateOfOrder:  o.DateOfOrder,
		Quantity:     o.Quantity,
		Status:       o.Status,
		MaterialID:   o.MaterialID,
		MaterialText: o.Material.Text,
		SizeID:       o.SizeID,
		SizeName:     o.Size.Name,
		StoreID:      o.StoreID,
		StoreTitle:   o.Store.Title,
		UserID:       o.UserID,
	}
}

// Place はmaterialをロックして数量を引き当て、orderを作る。
// orderのsize/storeは発注時点のmaterialからコピーする。
func (u *OrderUsecase) Place(ctx context.Context, actor Actor, in PlaceOrderInput) (OrderOutput, error) {
	if in.MaterialID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "MATERIAL_ID_REQUIRED")
	}
	if in.Quantity <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "QUANTITY_REQUIRED")
	}

	status := in.Status
	if status == "" {
		status = model.OrderStatusPending
	}
	if !status.IsValid() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_STATUS")
	}

	dateOfOrder := in.DateOfOrder
	if dateOfOrder.IsZero() {
		dateOfOrder = time.Now()
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		material, err := r.Materials().FindByIDForUpdate(ctx, in.MaterialID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "MATERIAL_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		if material.Quantity < in.Quantity {
			return NewHTTPError(http.StatusConflict, "INSUFFICIENT_STOCK")
		}

		material.Quantity -= in.Quantity
		if err := r.Materials().UpdateQuantity(ctx, material.ID, material.Quantity); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		created, err := r.Orders().Create(ctx, model.Order{
			DateOfOrder: dateOfOrder,
			Quantity:    in.Quantity,
			Status:      status,
			MaterialID:  material.ID,
			SizeID:      material.SizeID,
			StoreID:     material.StoreID,
			UserID:      actor.UserID,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		u.logger.Info("order placed",
			zap.Int64("order_id", created.ID),
			zap.Int64("material_id", material.ID),
			zap.Int("quantity", in.Quantity),
			zap.Int("stock_after", material.Quantity))

		// 出力用にsnapshot元の名前を載せる
		size, err := r.Sizes().FindByID(ctx, material.SizeID)
		if err != nil && err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		store, err := r.Stores().FindByID(ctx, material.StoreID)
		if err != nil && err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		created.Material = material
		created.Size = size
		created.Store = store
		out = toOrderOutput(created)
		out.Stock = material.Quantity
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// Update は数量/ステータスの変更を在庫へ反映する。
//
//	active    -> CANCELLED : 旧数量を全額戻す
//	CANCELLED -> active    : 新数量を引き当てる（足りなければエラー）
//	active    -> active    : 差分だけ調整する
//	CANCELLED -> CANCELLED : 在庫変化なし
func (u *OrderUsecase) Update(ctx context.Context, id int64, in UpdateOrderInput) (OrderOutput, error) {
	if id <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_ID")
	}
	if in.Quantity <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "QUANTITY_REQUIRED")
	}
	if !in.Status.IsValid() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_STATUS")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, id)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "ORDER_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		material, err := r.Materials().FindByIDForUpdate(ctx, order.MaterialID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "MATERIAL_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		oldQty := order.Quantity
		newQty := in.Quantity
		wasCancelled := order.Status == model.OrderStatusCancelled
		isNowCancelled := in.Status == model.OrderStatusCancelled

		switch {
		case !wasCancelled && isNowCancelled:
			// キャンセル: 旧数量を戻す
			material.Quantity += oldQty

		case wasCancelled && !isNowCancelled:
			// 再アクティブ化: 新数量を引き当て直す
			if material.Quantity < newQty {
				return NewHTTPError(http.StatusConflict, "INSUFFICIENT_STOCK")
			}
			material.Quantity -= newQty

		case !wasCancelled && !isNowCancelled:
			diff := newQty - oldQty
			if diff > 0 && material.Quantity < diff {
				return NewHTTPError(http.StatusConflict, "INSUFFICIENT_STOCK")
			}
			material.Quantity -= diff

		default:
			// CANCELLED -> CANCELLED は在庫に触らない
		}

		if err := r.Materials().UpdateQuantity(ctx, material.ID, material.Quantity); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		order.Quantity = newQty
		order.Status = in.Status
		if !in.DateOfOrder.IsZero() {
			order.DateOfOrder = in.DateOfOrder
		}
		if err := r.Orders().Update(ctx, order); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		u.logger.Info("order updated",
			zap.Int64("order_id", order.ID),
			zap.String("status", string(order.Status)),
			zap.Int("stock_after", material.Quantity))

		out = toOrderOutput(order)
		out.Stock = material.Quantity
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// Delete はorderを物理削除する。在庫は戻さない。
// 予約を戻したい場合は先にCANCELLEDへ更新すること。
func (u *OrderUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "INVALID_ID")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, id); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "ORDER_NOT_FOUND")
			}
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		if err := r.Orders().Delete(ctx, id); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		u.logger.Info("order deleted", zap.Int64("order_id", id))
		return nil
	})
}

func (u *OrderUsecase) FindByID(ctx context.Context, id int64) (OrderOutput, error) {
	if id <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_ID")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, id)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "ORDER_NOT_FOUND")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}
		out = toOrderOutput(o)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ListForActor はSUPER_ADMINなら全件、それ以外は自分のstoreの分だけ。
func (u *OrderUsecase) ListForActor(ctx context.Context, actor Actor) ([]OrderOutput, error) {
	scope, err := ResolveScope(actor)
	if err != nil {
		return []OrderOutput{}, err
	}

	var outs []OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var orders []model.Order
		var err error
		if scope.StoreID == nil {
			orders, err = r.Orders().FindAll(ctx)
		} else {
			orders, err = r.Orders().FindByStoreID(ctx, *scope.StoreID)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			outs = append(outs, toOrderOutput(o))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}

	u.logger.Info("retrieved orders", zap.String("actor", actor.Username), zap.Int("count", len(outs)))
	return outs, nil
}

// ListPaginated はフィルタ付きページング。非SUPER_ADMINのstore指定は
// 自分のstoreに強制される。
func (u *OrderUsecase) ListPaginated(ctx context.Context, actor Actor, in ListOrdersInput) (OrderPageOutput, error) {
	if in.Page < 1 {
		return OrderPageOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_PAGE")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return OrderPageOutput{}, NewHTTPError(http.StatusBadRequest, "INVALID_LIMIT")
	}

	scope, err := ResolveScope(actor)
	if err != nil {
		return OrderPageOutput{}, err
	}

	var out OrderPageOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, total, err := r.Orders().List(ctx, repo.OrderListFilter{
			Page:         in.Page,
			Limit:        in.Limit,
			StoreID:      scope.ForceStore(in.StoreID),
			MaterialText: in.MaterialText,
			SizeName:     in.SizeName,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
		}

		outs := make([]OrderOutput, 0, len(items))
		for _, o := range items {
			outs = append(outs, toOrderOutput(o))
		}
		out = OrderPageOutput{Items: outs, Total: total, Page: in.Page, Limit: in.Limit}
		return nil
	})

	if err != nil {
		return OrderPageOutput{}, err
	}
	return out, nil
}
