package repositories

import (
	"context"
	"strings"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"

	"gorm.io/gorm"
)

type CouponUsageRepository struct {
	DB *gorm.DB
}

func (r CouponUsageRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := r.DB.WithContext(ctx).Where("UPPER(code) = ?", code).First(&c).Error; err != nil {
		return nil, translateError("mã giảm giá", err)
	}
	return &c, nil
}

// Redeem records the usage and bumps used_count, guarded so it never
// passes max_uses.
func (r CouponUsageRepository) Redeem(ctx context.Context, couponID, userID, orderID domain.ID, at time.Time) error {
	db := r.DB.WithContext(ctx)
	res := db.Model(&models.Coupon{}).
		Where("id = ? AND used_count < max_uses", couponID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return translateError("mã giảm giá", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ConflictError{Resource: "mã giảm giá", Msg: "mã giảm giá đã hết lượt sử dụng"}
	}
	usage := models.CouponUsage{
		UserID:   userID,
		CouponID: couponID,
		OrderID:  orderID,
		UsedAt:   at.UTC(),
		IsActive: true,
	}
	if err := db.Create(&usage).Error; err != nil {
		return translateError("lượt dùng mã giảm giá", err)
	}
	return nil
}
