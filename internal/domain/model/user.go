package model

import "time"

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleLocalAdmin Role = "LOCAL_ADMIN"
)

func (r Role) IsValid() bool {
	return r == RoleSuperAdmin || r == RoleLocalAdmin
}

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex" json:"username"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null" json:"role"`

	// SUPER_ADMINはstoreを持たないことがある
	StoreID *int64 `gorm:"index" json:"store_id"`
	Store   *Store `gorm:"foreignKey:StoreID" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
