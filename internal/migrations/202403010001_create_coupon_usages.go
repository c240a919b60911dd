package migrations

import (
	"time"

	"gorm.io/gorm"
)

// v5CouponUsage stops a user from registering the same coupon twice on one
// order.
type v5CouponUsage struct {
	ID       uint      `gorm:"primaryKey"`
	UserID   uint      `gorm:"not null;uniqueIndex:uq_coupon_usages_user_coupon_order"`
	User     v1User    `gorm:"constraint:OnDelete:CASCADE"`
	CouponID uint      `gorm:"not null;uniqueIndex:uq_coupon_usages_user_coupon_order;index"`
	Coupon   v1Coupon  `gorm:"constraint:OnDelete:CASCADE"`
	OrderID  uint      `gorm:"not null;uniqueIndex:uq_coupon_usages_user_coupon_order;index"`
	Order    v1Order   `gorm:"constraint:OnDelete:CASCADE"`
	UsedAt   time.Time `gorm:"not null"`
	IsActive bool      `gorm:"not null;default:true"`
}

func (v5CouponUsage) TableName() string { return "coupon_usages" }

func init() {
	Register(&Migration{
		Version: "202403010001",
		Name:    "create_coupon_usages",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&v5CouponUsage{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&v5CouponUsage{})
		},
	})
}
