package model

import "time"

type Material struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Text     string `gorm:"type:varchar(255);not null;uniqueIndex:idx_materials_text_size_store" json:"text"`
	Quantity int    `gorm:"not null" json:"quantity"`

	SizeID int64 `gorm:"not null;uniqueIndex:idx_materials_text_size_store" json:"size_id"`
	Size   Size  `gorm:"foreignKey:SizeID" json:"-"`

	StoreID int64 `gorm:"not null;index;uniqueIndex:idx_materials_text_size_store" json:"store_id"`
	Store   Store `gorm:"foreignKey:StoreID" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
