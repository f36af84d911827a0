package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// CANCELLED以外は全てアクティブ（在庫を予約している）
func (s OrderStatus) IsActive() bool {
	return s != OrderStatusCancelled
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	DateOfOrder time.Time   `gorm:"not null" json:"date_of_order"`
	Quantity    int         `gorm:"not null" json:"quantity"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	MaterialID int64    `gorm:"not null;index" json:"material_id"`
	Material   Material `gorm:"foreignKey:MaterialID" json:"-"`

	// size/storeは発注時点のスナップショット（materialの編集で変わらない）
	SizeID int64 `gorm:"not null" json:"size_id"`
	Size   Size  `gorm:"foreignKey:SizeID" json:"-"`

	StoreID int64 `gorm:"not null;index" json:"store_id"`
	Store   Store `gorm:"foreignKey:StoreID" json:"-"`

	UserID int64 `gorm:"not null;index" json:"user_id"`
	User   User  `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
