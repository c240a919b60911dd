package services

import (
	"context"
	"strings"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
	"busbooking/internal/validation"

	"gorm.io/gorm"
)

func couponError(msg string) error {
	return domain.ValidationError{
		Field:  "couponCode",
		Msg:    msg,
		Fields: []domain.FieldError{{Field: "couponCode", Message: msg}},
	}
}

// applyCoupon checks c against the trip and returns the discount on subtotal.
func applyCoupon(c *models.Coupon, trip *models.Trip, subtotal int64, now time.Time) (int64, error) {
	switch {
	case c.Status != models.CouponActive:
		return 0, couponError("Mã giảm giá không còn hiệu lực")
	case now.Before(c.ValidFrom):
		return 0, couponError("Mã giảm giá chưa đến thời gian áp dụng")
	case now.After(c.ValidTo):
		return 0, couponError("Mã giảm giá đã hết hạn")
	case c.UsedCount >= c.MaxUses:
		return 0, couponError("Mã giảm giá đã hết lượt sử dụng")
	}
	if c.BusCompanyID != nil && (trip.BusRoute == nil || *c.BusCompanyID != trip.BusRoute.BusCompanyID) {
		return 0, couponError("Mã giảm giá không áp dụng cho nhà xe này")
	}
	return c.Discount(subtotal), nil
}

// CouponQuote is the price breakdown for a coupon on a prospective booking.
type CouponQuote struct {
	Code          string `json:"code"`
	Subtotal      int64  `json:"subtotal"`
	Discount      int64  `json:"discount"`
	Total         int64  `json:"total"`
	DiscountLabel string `json:"discountLabel"`
	TotalLabel    string `json:"totalLabel"`
}

type CouponService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func (s CouponService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Validate prices seats on a trip with the coupon, without redeeming it.
func (s CouponService) Validate(ctx context.Context, in validation.CouponCheck) (*CouponQuote, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	trip, err := repositories.TripRepository{DB: s.DB}.GetForBooking(ctx, in.TripID, false)
	if err != nil {
		return nil, err
	}
	coupon, err := repositories.CouponUsageRepository{DB: s.DB}.FindByCode(ctx, in.Code)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, couponError("Mã giảm giá không tồn tại")
		}
		return nil, err
	}
	subtotal := trip.Price * int64(in.Seats)
	discount, err := applyCoupon(coupon, trip, subtotal, s.now())
	if err != nil {
		return nil, err
	}
	return &CouponQuote{
		Code:          strings.ToUpper(coupon.Code),
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         subtotal - discount,
		DiscountLabel: utils.ConvertMoney(discount),
		TotalLabel:    utils.ConvertMoney(subtotal - discount),
	}, nil
}
