package model

import "time"

type StoreStatus string

const (
	StoreStatusActive   StoreStatus = "ACTIVE"
	StoreStatusInactive StoreStatus = "INACTIVE"
)

func (s StoreStatus) IsValid() bool {
	return s == StoreStatusActive || s == StoreStatusInactive
}

type Store struct {
	ID      int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title   string      `gorm:"type:varchar(255);not null" json:"title"`
	Address string      `gorm:"type:varchar(255);not null" json:"address"`
	Status  StoreStatus `gorm:"type:varchar(20);not null" json:"status"`

	// セットアップで作られたstoreは削除不可
	IsSystemEntity bool `gorm:"not null;default:false" json:"is_system_entity"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
