package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"clothesmanager/internal/domain/model"
	repo "clothesmanager/internal/repository"
	"clothesmanager/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newMaterialUC(tx *TxManagerMock) *usecase.MaterialUsecase {
	return usecase.NewMaterialUsecase(tx, zap.NewNop())
}

// =====================
// Save tests
// =====================

func TestMaterialUsecase_Save_EmptyText(t *testing.T) {
	tx := new(TxManagerMock)
	uc := newMaterialUC(tx)

	_, err := uc.Save(context.Background(), usecase.SaveMaterialInput{
		Text: "   ", Quantity: 1, SizeID: 1, StoreID: 1,
	})
	assertErrCode(t, err, http.StatusBadRequest, "TEXT_REQUIRED")
}

func TestMaterialUsecase_Save_NegativeQuantity(t *testing.T) {
	tx := new(TxManagerMock)
	uc := newMaterialUC(tx)

	_, err := uc.Save(context.Background(), usecase.SaveMaterialInput{
		Text: "Tシャツ", Quantity: -1, SizeID: 1, StoreID: 1,
	})
	assertErrCode(t, err, http.StatusBadRequest, "INVALID_QUANTITY")
}

func TestMaterialUsecase_Save_Duplicate(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	materials := new(MaterialRepoMock)
	tx.Repos = &TxReposMock{materials: materials}
	tx.On("WithinTx", mock.Anything).Return(nil)

	materials.On("ExistsByTextSizeStore", mock.Anything, "Tシャツ", int64(1), int64(1)).Return(true, nil)

	uc := newMaterialUC(tx)

	_, err := uc.Save(ctx, usecase.SaveMaterialInput{
		Text: "Tシャツ", Quantity: 10, SizeID: 1, StoreID: 1,
	})
	assertErrCode(t, err, http.StatusConflict, "MATERIAL_ALREADY_EXISTS")

	materials.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMaterialUsecase_Save_SizeNotFound(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	materials := new(MaterialRepoMock)
	sizes := new(SizeRepoMock)
	tx.Repos = &TxReposMock{materials: materials, sizes: sizes}
	tx.On("WithinTx", mock.Anything).Return(nil)

	materials.On("ExistsByTextSizeStore", mock.Anything, "Tシャツ", int64(9), int64(1)).Return(false, nil)
	sizes.On("FindByID", mock.Anything, int64(9)).Return(model.Size{}, repo.ErrNotFound)

	uc := newMaterialUC(tx)

	_, err := uc.Save(ctx, usecase.SaveMaterialInput{
		Text: "Tシャツ", Quantity: 10, SizeID: 9, StoreID: 1,
	})
	assertErrCode(t, err, http.StatusNotFound, "SIZE_NOT_FOUND")
}

func TestMaterialUsecase_Save_Success(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	materials := new(MaterialRepoMock)
	sizes := new(SizeRepoMock)
	stores := new(StoreRepoMock)
	tx.Repos = &TxReposMock{materials: materials, sizes: sizes, stores: stores}
	tx.On("WithinTx", mock.Anything).Return(nil)

	materials.On("ExistsByTextSizeStore", mock.Anything, "Tシャツ", int64(2), int64(3)).Return(false, nil)
	sizes.On("FindByID", mock.Anything, int64(2)).Return(model.Size{ID: 2, Name: "M"}, nil)
	stores.On("FindByID", mock.Anything, int64(3)).Return(model.Store{ID: 3, Title: "渋谷店"}, nil)
	materials.On("Create", mock.Anything, mock.MatchedBy(func(m model.Material) bool {
		return m.Text == "Tシャツ" && m.Quantity == 10 && m.SizeID == 2 && m.StoreID == 3
	})).Return(model.Material{ID: 7, Text: "Tシャツ", Quantity: 10, SizeID: 2, StoreID: 3}, nil)

	uc := newMaterialUC(tx)

	out, err := uc.Save(ctx, usecase.SaveMaterialInput{
		Text: "Tシャツ", Quantity: 10, SizeID: 2, StoreID: 3,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, "M", out.SizeName)
	assert.Equal(t, "渋谷店", out.StoreTitle)

	materials.AssertExpectations(t)
}

// =====================
// Delete tests
// =====================

func TestMaterialUsecase_Delete_RequiresSuperAdmin(t *testing.T) {
	tx := new(TxManagerMock)
	uc := newMaterialUC(tx)

	err := uc.Delete(context.Background(), localAdmin(1), 5)
	assertErrCode(t, err, http.StatusForbidden, "ACCESS_DENIED")
}

func TestMaterialUsecase_Delete_HasOrders(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	materials := new(MaterialRepoMock)
	orders := new(OrderRepoMock)
	tx.Repos = &TxReposMock{materials: materials, orders: orders}
	tx.On("WithinTx", mock.Anything).Return(nil)

	materials.On("FindByID", mock.Anything, int64(5)).Return(model.Material{ID: 5}, nil)
	orders.On("ExistsByMaterialID", mock.Anything, int64(5)).Return(true, nil)

	uc := newMaterialUC(tx)

	err := uc.Delete(ctx, superAdmin(), 5)
	assertErrCode(t, err, http.StatusConflict, "MATERIAL_HAS_ORDERS")

	materials.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// =====================
// Scope tests
// =====================

func TestMaterialUsecase_FindByStoreID_LocalAdminOtherStore(t *testing.T) {
	tx := new(TxManagerMock)
	uc := newMaterialUC(tx)

	// store 1のadminがstore 2を直接見るのは403
	_, err := uc.FindByStoreID(context.Background(), localAdmin(1), 2)
	assertErrCode(t, err, http.StatusForbidden, "ACCESS_DENIED")
}

func TestMaterialUsecase_ListPaginated_LocalAdminForcedToOwnStore(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	materials := new(MaterialRepoMock)
	tx.Repos = &TxReposMock{materials: materials}
	tx.On("WithinTx", mock.Anything).Return(nil)

	// store 9を要求しても自分のstore 1に強制される
	materials.On("List", mock.Anything, mock.MatchedBy(func(f repo.MaterialListFilter) bool {
		return f.StoreID != nil && *f.StoreID == 1
	})).Return([]model.Material{}, int64(0), nil)

	uc := newMaterialUC(tx)

	out, err := uc.ListPaginated(ctx, localAdmin(1), usecase.ListMaterialsInput{
		Page: 1, Limit: 20, StoreID: int64Ptr(9),
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), out.Total)

	materials.AssertExpectations(t)
}

func TestMaterialUsecase_FindAll_LocalAdminForcedToOwnStore(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	materials := new(MaterialRepoMock)
	tx.Repos = &TxReposMock{materials: materials}
	tx.On("WithinTx", mock.Anything).Return(nil)

	// store 9を要求しても自分のstore 1に強制される。text/sizeの条件はそのまま通る
	materials.On("FindAllByFilter", mock.Anything, mock.MatchedBy(func(f repo.MaterialFilter) bool {
		return f.StoreID != nil && *f.StoreID == 1 && f.Text == "シャツ" && f.SizeID != nil && *f.SizeID == 2
	})).Return([]model.Material{
		{ID: 3, Text: "Tシャツ", Quantity: 5, SizeID: 2, StoreID: 1},
	}, nil)

	uc := newMaterialUC(tx)

	outs, err := uc.FindAll(ctx, localAdmin(1), usecase.FindMaterialsInput{
		StoreID: int64Ptr(9), Text: "シャツ", SizeID: int64Ptr(2),
	})
	assert.NoError(t, err)
	assert.Len(t, outs, 1)
	assert.Equal(t, int64(3), outs[0].ID)

	materials.AssertExpectations(t)
}

func TestMaterialUsecase_FindAll_SuperAdminSeesAll(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	materials := new(MaterialRepoMock)
	tx.Repos = &TxReposMock{materials: materials}
	tx.On("WithinTx", mock.Anything).Return(nil)

	materials.On("FindAllByFilter", mock.Anything, mock.MatchedBy(func(f repo.MaterialFilter) bool {
		return f.StoreID == nil
	})).Return([]model.Material{}, nil)

	uc := newMaterialUC(tx)

	_, err := uc.FindAll(ctx, superAdmin(), usecase.FindMaterialsInput{})
	assert.NoError(t, err)

	materials.AssertExpectations(t)
}

// =====================
// Distribute tests
// =====================

func TestMaterialUsecase_Distribute_RequiresSuperAdmin(t *testing.T) {
	tx := new(TxManagerMock)
	uc := newMaterialUC(tx)

	_, err := uc.Distribute(context.Background(), localAdmin(1), usecase.DistributeMaterialInput{
		MaterialID: 1, ReceiverStoreID: 2, Quantity: 5,
	})
	assertErrCode(t, err, http.StatusForbidden, "ACCESS_DENIED")
}

func TestMaterialUsecase_Distribute_InvalidQuantity(t *testing.T) {
	tx := new(TxManagerMock)
	uc := newMaterialUC(tx)

	_, err := uc.Distribute(context.Background(), superAdmin(), usecase.DistributeMaterialInput{
		MaterialID: 1, ReceiverStoreID: 2, Quantity: 0,
	})
	assertErrCode(t, err, http.StatusBadRequest, "INVALID_QUANTITY")
}

func TestMaterialUsecase_Distribute_Insufficient(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	materials := new(MaterialRepoMock)
	tx.Repos = &TxReposMock{materials: materials}
	tx.On("WithinTx", mock.Anything).Return(nil)

	materials.On("FindByID", mock.Anything, int64(1)).Return(model.Material{
		ID: 1, Text: "Tシャツ", Quantity: 3, SizeID: 1, StoreID: 1,
	}, nil)

	uc := newMaterialUC(tx)

	_, err := uc.Distribute(ctx, superAdmin(), usecase.DistributeMaterialInput{
		MaterialID: 1, ReceiverStoreID: 2, Quantity: 5,
	})
	assertErrCode(t, err, http.StatusConflict, "INSUFFICIENT_QUANTITY")

	// 不足のときはロックも書き込みもしない
	materials.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
	materials.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
	materials.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 受け取り側に同じ(text, size)があれば積み増し
func TestMaterialUsecase_Distribute_MergeIntoExisting(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	materials := new(MaterialRepoMock)
	stores := new(StoreRepoMock)
	sizes := new(SizeRepoMock)
	tx.Repos = &TxReposMock{materials: materials, stores: stores, sizes: sizes}
	tx.On("WithinTx", mock.Anything).Return(nil)

	source := model.Material{ID: 1, Text: "Tシャツ", Quantity: 10, SizeID: 1, StoreID: 1}
	target := model.Material{ID: 2, Text: "Tシャツ", Quantity: 4, SizeID: 1, StoreID: 2}

	materials.On("FindByID", mock.Anything, int64(1)).Return(source, nil)
	stores.On("FindByID", mock.Anything, int64(2)).Return(model.Store{ID: 2, Title: "大阪店"}, nil)
	materials.On("FindByTextSizeStore", mock.Anything, "Tシャツ", int64(1), int64(2)).Return(target, true, nil)
	materials.On("FindByIDForUpdate", mock.Anything, int64(1)).Return(source, nil)
	materials.On("FindByIDForUpdate", mock.Anything, int64(2)).Return(target, nil)

	// 受け取り側 4+3=7、配布元 10-3=7
	materials.On("UpdateQuantity", mock.Anything, int64(2), 7).Return(nil)
	materials.On("UpdateQuantity", mock.Anything, int64(1), 7).Return(nil)
	sizes.On("FindByID", mock.Anything, int64(1)).Return(model.Size{ID: 1, Name: "M"}, nil)

	uc := newMaterialUC(tx)

	out, err := uc.Distribute(ctx, superAdmin(), usecase.DistributeMaterialInput{
		MaterialID: 1, ReceiverStoreID: 2, Quantity: 3,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), out.ID)
	assert.Equal(t, 7, out.Quantity)

	materials.AssertExpectations(t)
	materials.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 受け取り側に無ければ新規作成
func TestMaterialUsecase_Distribute_CreatesInReceiver(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	materials := new(MaterialRepoMock)
	stores := new(StoreRepoMock)
	sizes := new(SizeRepoMock)
	tx.Repos = &TxReposMock{materials: materials, stores: stores, sizes: sizes}
	tx.On("WithinTx", mock.Anything).Return(nil)

	source := model.Material{ID: 1, Text: "Tシャツ", Quantity: 10, SizeID: 1, StoreID: 1}

	materials.On("FindByID", mock.Anything, int64(1)).Return(source, nil)
	stores.On("FindByID", mock.Anything, int64(2)).Return(model.Store{ID: 2, Title: "大阪店"}, nil)
	materials.On("FindByIDForUpdate", mock.Anything, int64(1)).Return(source, nil)
	materials.On("FindByTextSizeStore", mock.Anything, "Tシャツ", int64(1), int64(2)).Return(model.Material{}, false, nil)

	materials.On("Create", mock.Anything, mock.MatchedBy(func(m model.Material) bool {
		return m.Text == "Tシャツ" && m.Quantity == 3 && m.SizeID == 1 && m.StoreID == 2
	})).Return(model.Material{ID: 9, Text: "Tシャツ", Quantity: 3, SizeID: 1, StoreID: 2}, nil)

	materials.On("UpdateQuantity", mock.Anything, int64(1), 7).Return(nil)
	sizes.On("FindByID", mock.Anything, int64(1)).Return(model.Size{ID: 1, Name: "M"}, nil)

	uc := newMaterialUC(tx)

	out, err := uc.Distribute(ctx, superAdmin(), usecase.DistributeMaterialInput{
		MaterialID: 1, ReceiverStoreID: 2, Quantity: 3,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(9), out.ID)
	assert.Equal(t, 3, out.Quantity)
	assert.Equal(t, "大阪店", out.StoreTitle)

	materials.AssertExpectations(t)
}

// 受け取り側のidが小さいときは受け取り側を先にロックする
func TestMaterialUsecase_Distribute_LocksRowsInIDOrder(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	materials := new(MaterialRepoMock)
	stores := new(StoreRepoMock)
	sizes := new(SizeRepoMock)
	tx.Repos = &TxReposMock{materials: materials, stores: stores, sizes: sizes}
	tx.On("WithinTx", mock.Anything).Return(nil)

	source := model.Material{ID: 5, Text: "Tシャツ", Quantity: 10, SizeID: 1, StoreID: 1}
	target := model.Material{ID: 2, Text: "Tシャツ", Quantity: 4, SizeID: 1, StoreID: 2}

	var lockOrder []int64
	record := func(args mock.Arguments) {
		lockOrder = append(lockOrder, args.Get(1).(int64))
	}

	materials.On("FindByID", mock.Anything, int64(5)).Return(source, nil)
	stores.On("FindByID", mock.Anything, int64(2)).Return(model.Store{ID: 2, Title: "大阪店"}, nil)
	materials.On("FindByTextSizeStore", mock.Anything, "Tシャツ", int64(1), int64(2)).Return(target, true, nil)
	materials.On("FindByIDForUpdate", mock.Anything, int64(2)).Run(record).Return(target, nil)
	materials.On("FindByIDForUpdate", mock.Anything, int64(5)).Run(record).Return(source, nil)
	materials.On("UpdateQuantity", mock.Anything, int64(2), 7).Return(nil)
	materials.On("UpdateQuantity", mock.Anything, int64(5), 7).Return(nil)
	sizes.On("FindByID", mock.Anything, int64(1)).Return(model.Size{ID: 1, Name: "M"}, nil)

	uc := newMaterialUC(tx)

	out, err := uc.Distribute(ctx, superAdmin(), usecase.DistributeMaterialInput{
		MaterialID: 5, ReceiverStoreID: 2, Quantity: 3,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), out.ID)
	assert.Equal(t, []int64{2, 5}, lockOrder)

	materials.AssertExpectations(t)
}

// A→B→Aの往復で両storeの在庫が元の水準に戻る
func TestMaterialUsecase_Distribute_RoundTripRestoresLevels(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	materials := new(MaterialRepoMock)
	stores := new(StoreRepoMock)
	sizes := new(SizeRepoMock)
	tx.Repos = &TxReposMock{materials: materials, stores: stores, sizes: sizes}
	tx.On("WithinTx", mock.Anything).Return(nil)

	matA := model.Material{ID: 1, Text: "Tシャツ", Quantity: 10, SizeID: 1, StoreID: 1}
	matB := model.Material{ID: 2, Text: "Tシャツ", Quantity: 4, SizeID: 1, StoreID: 2}

	stores.On("FindByID", mock.Anything, int64(1)).Return(model.Store{ID: 1, Title: "本店"}, nil)
	stores.On("FindByID", mock.Anything, int64(2)).Return(model.Store{ID: 2, Title: "大阪店"}, nil)
	sizes.On("FindByID", mock.Anything, int64(1)).Return(model.Size{ID: 1, Name: "M"}, nil)

	// 1回目: store1 → store2 に3移す（10→7 / 4→7）
	materials.On("FindByID", mock.Anything, int64(1)).Return(matA, nil).Once()
	materials.On("FindByTextSizeStore", mock.Anything, "Tシャツ", int64(1), int64(2)).Return(matB, true, nil).Once()
	materials.On("FindByIDForUpdate", mock.Anything, int64(1)).Return(matA, nil).Once()
	materials.On("FindByIDForUpdate", mock.Anything, int64(2)).Return(matB, nil).Once()
	materials.On("UpdateQuantity", mock.Anything, int64(2), 7).Return(nil).Once()
	materials.On("UpdateQuantity", mock.Anything, int64(1), 7).Return(nil).Once()

	uc := newMaterialUC(tx)

	out1, err := uc.Distribute(ctx, superAdmin(), usecase.DistributeMaterialInput{
		MaterialID: 1, ReceiverStoreID: 2, Quantity: 3,
	})
	assert.NoError(t, err)
	assert.Equal(t, 7, out1.Quantity)

	movedA := model.Material{ID: 1, Text: "Tシャツ", Quantity: 7, SizeID: 1, StoreID: 1}
	movedB := model.Material{ID: 2, Text: "Tシャツ", Quantity: 7, SizeID: 1, StoreID: 2}

	// 2回目: store2 → store1 に3戻す（7→4 / 7→10）
	materials.On("FindByID", mock.Anything, int64(2)).Return(movedB, nil).Once()
	materials.On("FindByTextSizeStore", mock.Anything, "Tシャツ", int64(1), int64(1)).Return(movedA, true, nil).Once()
	materials.On("FindByIDForUpdate", mock.Anything, int64(1)).Return(movedA, nil).Once()
	materials.On("FindByIDForUpdate", mock.Anything, int64(2)).Return(movedB, nil).Once()
	materials.On("UpdateQuantity", mock.Anything, int64(1), 10).Return(nil).Once()
	materials.On("UpdateQuantity", mock.Anything, int64(2), 4).Return(nil).Once()

	out2, err := uc.Distribute(ctx, superAdmin(), usecase.DistributeMaterialInput{
		MaterialID: 2, ReceiverStoreID: 1, Quantity: 3,
	})
	assert.NoError(t, err)

	// 戻し先は元のmaterial行で、在庫は往復前の水準
	assert.Equal(t, int64(1), out2.ID)
	assert.Equal(t, 10, out2.Quantity)

	materials.AssertExpectations(t)
	materials.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
