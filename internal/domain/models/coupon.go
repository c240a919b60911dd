package models

import (
	"time"

	"busbooking/internal/domain"

	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type CouponStatus string

const (
	CouponActive   CouponStatus = "active"
	CouponInactive CouponStatus = "inactive"
	CouponExpired  CouponStatus = "expired"
)

func (s CouponStatus) Valid() bool {
	switch s {
	case CouponActive, CouponInactive, CouponExpired:
		return true
	}
	return false
}

type Coupon struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	Code             string       `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Description      string       `gorm:"size:255" json:"description"`
	DiscountType     DiscountType `gorm:"size:16;not null" json:"discountType"`
	DiscountValue    int64        `gorm:"not null" json:"discountValue"`
	MaxDiscountValue int64        `gorm:"not null" json:"maxDiscountValue"`
	MaxUses          int          `gorm:"not null" json:"maxUses"`
	UsedCount        int          `gorm:"not null" json:"usedCount"`
	ValidFrom        time.Time    `gorm:"not null" json:"validFrom"`
	ValidTo          time.Time    `gorm:"not null" json:"validTo"`
	Status           CouponStatus `gorm:"size:16;not null" json:"status"`
	BusCompanyID     *uint        `json:"companyId"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

func (c *Coupon) BeforeSave(*gorm.DB) error {
	if c.Status == "" {
		c.Status = CouponActive
	}
	if !c.Status.Valid() {
		return domain.ValidationError{Field: "status", Msg: "trạng thái mã giảm giá không hợp lệ"}
	}
	switch c.DiscountType {
	case DiscountPercentage:
		if c.DiscountValue < 0 || c.DiscountValue > 100 {
			return domain.ValidationError{Field: "discountValue", Msg: "phần trăm giảm giá phải từ 0 đến 100"}
		}
	case DiscountFixed:
		if c.DiscountValue < 0 {
			return domain.ValidationError{Field: "discountValue", Msg: "giá trị giảm không được âm"}
		}
	default:
		return domain.ValidationError{Field: "discountType", Msg: "loại giảm giá không hợp lệ"}
	}
	if c.ValidTo.Before(c.ValidFrom) {
		return domain.ValidationError{Field: "validTo", Msg: "ngày kết thúc phải sau ngày bắt đầu"}
	}
	c.ValidFrom = c.ValidFrom.UTC()
	c.ValidTo = c.ValidTo.UTC()
	return nil
}

// Discount is what the coupon takes off subtotal.
func (c *Coupon) Discount(subtotal int64) int64 {
	if subtotal <= 0 {
		return 0
	}
	var d int64
	switch c.DiscountType {
	case DiscountPercentage:
		d = subtotal * c.DiscountValue / 100
		if c.MaxDiscountValue > 0 && d > c.MaxDiscountValue {
			d = c.MaxDiscountValue
		}
	case DiscountFixed:
		d = c.DiscountValue
	}
	if d > subtotal {
		d = subtotal
	}
	return d
}

// Usable reports whether the coupon can be redeemed at now.
func (c *Coupon) Usable(now time.Time) bool {
	if c.Status != CouponActive {
		return false
	}
	if now.Before(c.ValidFrom) || now.After(c.ValidTo) {
		return false
	}
	return c.UsedCount < c.MaxUses
}

// CouponUsage binds a user, coupon and order; the triple is unique.
type CouponUsage struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null" json:"userId"`
	CouponID uint      `gorm:"not null" json:"couponId"`
	OrderID  uint      `gorm:"not null" json:"orderId"`
	UsedAt   time.Time `gorm:"not null" json:"usedAt"`
	IsActive bool      `gorm:"not null" json:"isActive"`
}

func (u *CouponUsage) SetActive(v bool) { u.IsActive = v }
