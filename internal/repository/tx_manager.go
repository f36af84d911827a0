package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Materials() MaterialRepository
	Orders() OrderRepository
	Stores() StoreRepository
	Sizes() SizeRepository
	Users() UserRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fnがerrorを返したら全てロールバックされる。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
