package usecase_test

import (
	"context"
	"testing"

	"clothesmanager/internal/domain/model"
	repo "clothesmanager/internal/repository"
	"clothesmanager/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	materials repo.MaterialRepository
	orders    repo.OrderRepository
	stores    repo.StoreRepository
	sizes     repo.SizeRepository
	users     repo.UserRepository
}

func (r *TxReposMock) Materials() repo.MaterialRepository { return r.materials }
func (r *TxReposMock) Orders() repo.OrderRepository       { return r.orders }
func (r *TxReposMock) Stores() repo.StoreRepository       { return r.stores }
func (r *TxReposMock) Sizes() repo.SizeRepository         { return r.sizes }
func (r *TxReposMock) Users() repo.UserRepository         { return r.users }

// =====================
// Repository mocks
// =====================

type MaterialRepoMock struct{ mock.Mock }

func (m *MaterialRepoMock) FindByID(ctx context.Context, id int64) (model.Material, error) {
	args := m.Called(ctx, id)
	mat, _ := args.Get(0).(model.Material)
	return mat, args.Error(1)
}

func (m *MaterialRepoMock) FindByIDForUpdate(ctx context.Context, id int64) (model.Material, error) {
	args := m.Called(ctx, id)
	mat, _ := args.Get(0).(model.Material)
	return mat, args.Error(1)
}

func (m *MaterialRepoMock) FindByStoreID(ctx context.Context, storeID int64) ([]model.Material, error) {
	args := m.Called(ctx, storeID)
	items, _ := args.Get(0).([]model.Material)
	return items, args.Error(1)
}

func (m *MaterialRepoMock) List(ctx context.Context, f repo.MaterialListFilter) ([]model.Material, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Material)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MaterialRepoMock) ExistsByTextSizeStore(ctx context.Context, text string, sizeID int64, storeID int64) (bool, error) {
	args := m.Called(ctx, text, sizeID, storeID)
	return args.Bool(0), args.Error(1)
}

func (m *MaterialRepoMock) ExistsByTextSizeStoreExcluding(ctx context.Context, text string, sizeID int64, storeID int64, excludeID int64) (bool, error) {
	args := m.Called(ctx, text, sizeID, storeID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MaterialRepoMock) FindByTextSizeStore(ctx context.Context, text string, sizeID int64, storeID int64) (model.Material, bool, error) {
	args := m.Called(ctx, text, sizeID, storeID)
	mat, _ := args.Get(0).(model.Material)
	return mat, args.Bool(1), args.Error(2)
}

func (m *MaterialRepoMock) FindAllByFilter(ctx context.Context, f repo.MaterialFilter) ([]model.Material, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Material)
	return items, args.Error(1)
}

func (m *MaterialRepoMock) ExistsByStoreID(ctx context.Context, storeID int64) (bool, error) {
	args := m.Called(ctx, storeID)
	return args.Bool(0), args.Error(1)
}

func (m *MaterialRepoMock) Count(ctx context.Context, storeID *int64) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MaterialRepoMock) Create(ctx context.Context, mat model.Material) (model.Material, error) {
	args := m.Called(ctx, mat)
	created, _ := args.Get(0).(model.Material)
	return created, args.Error(1)
}

func (m *MaterialRepoMock) Update(ctx context.Context, mat model.Material) error {
	args := m.Called(ctx, mat)
	return args.Error(0)
}

func (m *MaterialRepoMock) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MaterialRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, id int64) (model.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) FindByStoreID(ctx context.Context, storeID int64) ([]model.Order, error) {
	args := m.Called(ctx, storeID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) ExistsByMaterialID(ctx context.Context, materialID int64) (bool, error) {
	args := m.Called(ctx, materialID)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) ExistsByStoreID(ctx context.Context, storeID int64) (bool, error) {
	args := m.Called(ctx, storeID)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) ExistsByUserID(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) Count(ctx context.Context, storeID *int64) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, o model.Order) (model.Order, error) {
	args := m.Called(ctx, o)
	created, _ := args.Get(0).(model.Order)
	return created, args.Error(1)
}

func (m *OrderRepoMock) Update(ctx context.Context, o model.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *OrderRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type StoreRepoMock struct{ mock.Mock }

func (m *StoreRepoMock) FindByID(ctx context.Context, id int64) (model.Store, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Store)
	return s, args.Error(1)
}

func (m *StoreRepoMock) FindAll(ctx context.Context) ([]model.Store, error) {
	args := m.Called(ctx)
	stores, _ := args.Get(0).([]model.Store)
	return stores, args.Error(1)
}

func (m *StoreRepoMock) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *StoreRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *StoreRepoMock) Create(ctx context.Context, s model.Store) (model.Store, error) {
	args := m.Called(ctx, s)
	created, _ := args.Get(0).(model.Store)
	return created, args.Error(1)
}

func (m *StoreRepoMock) Update(ctx context.Context, s model.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *StoreRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type SizeRepoMock struct{ mock.Mock }

func (m *SizeRepoMock) FindByID(ctx context.Context, id int64) (model.Size, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Size)
	return s, args.Error(1)
}

func (m *SizeRepoMock) FindAll(ctx context.Context) ([]model.Size, error) {
	args := m.Called(ctx)
	sizes, _ := args.Get(0).([]model.Size)
	return sizes, args.Error(1)
}

func (m *SizeRepoMock) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *SizeRepoMock) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *SizeRepoMock) Create(ctx context.Context, s model.Size) (model.Size, error) {
	args := m.Called(ctx, s)
	created, _ := args.Get(0).(model.Size)
	return created, args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) FindByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindAll(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *UserRepoMock) FindByStoreID(ctx context.Context, storeID int64) ([]model.User, error) {
	args := m.Called(ctx, storeID)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *UserRepoMock) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepoMock) ExistsByStoreID(ctx context.Context, storeID int64) (bool, error) {
	args := m.Called(ctx, storeID)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepoMock) Count(ctx context.Context, storeID *int64) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepoMock) Create(ctx context.Context, u model.User) (model.User, error) {
	args := m.Called(ctx, u)
	created, _ := args.Get(0).(model.User)
	return created, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, u model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =====================
// Helpers
// =====================

func assertErrCode(t *testing.T, err error, wantStatus int, wantCode string) {
	t.Helper()
	if assert.Error(t, err) {
		he, ok := usecase.AsHTTPError(err)
		if assert.True(t, ok, "want HTTPError, got %T: %v", err, err) {
			assert.Equal(t, wantStatus, he.Status)
			assert.Equal(t, wantCode, he.Code)
		}
	}
}

func int64Ptr(v int64) *int64 { return &v }

func superAdmin() usecase.Actor {
	return usecase.Actor{UserID: 1, Username: "root", Role: model.RoleSuperAdmin}
}

func localAdmin(storeID int64) usecase.Actor {
	return usecase.Actor{UserID: 2, Username: "shibuya", Role: model.RoleLocalAdmin, StoreID: &storeID}
}
