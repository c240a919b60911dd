package repositories

import (
	"context"
	"time"

	"busbooking/internal/domain/models"

	"gorm.io/gorm"
)

// FeaturedRoute is a route with the number of tickets sold on it.
type FeaturedRoute struct {
	models.BusRoute
	TicketsSold int64 `json:"ticketsSold"`
}

type HomeRepository struct {
	DB *gorm.DB
}

type routeSales struct {
	ID          uint
	TicketsSold int64
}

// FeaturedRoutes ranks active routes by booked tickets.
func (r HomeRepository) FeaturedRoutes(ctx context.Context, limit int) ([]FeaturedRoute, error) {
	var sales []routeSales
	err := r.DB.WithContext(ctx).Table("bus_routes").
		Select("bus_routes.id AS id, COUNT(tickets.id) AS tickets_sold").
		Joins("LEFT JOIN trips ON trips.bus_route_id = bus_routes.id").
		Joins("LEFT JOIN tickets ON tickets.trip_id = trips.id AND tickets.status = ?", models.TicketBooked).
		Where("bus_routes.is_active = ?", true).
		Group("bus_routes.id").
		Order("tickets_sold DESC, bus_routes.id ASC").
		Limit(limit).
		Scan(&sales).Error
	if err != nil {
		return nil, translateError("tuyến xe", err)
	}
	if len(sales) == 0 {
		return []FeaturedRoute{}, nil
	}

	ids := make([]uint, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
	}
	var routes []models.BusRoute
	if err := r.DB.WithContext(ctx).Preload("FromCity").Preload("ToCity").Preload("BusCompany").
		Where("id IN ?", ids).Find(&routes).Error; err != nil {
		return nil, translateError("tuyến xe", err)
	}
	byID := make(map[uint]models.BusRoute, len(routes))
	for _, rt := range routes {
		byID[rt.ID] = rt
	}
	out := make([]FeaturedRoute, 0, len(sales))
	for _, s := range sales {
		if rt, ok := byID[s.ID]; ok {
			out = append(out, FeaturedRoute{BusRoute: rt, TicketsSold: s.TicketsSold})
		}
	}
	return out, nil
}

// ActiveCoupons lists coupons redeemable at now, soonest to expire first.
func (r HomeRepository) ActiveCoupons(ctx context.Context, now time.Time, limit int) ([]models.Coupon, error) {
	now = now.UTC()
	coupons := []models.Coupon{}
	err := r.DB.WithContext(ctx).
		Where("status = ?", models.CouponActive).
		Where("valid_from <= ? AND valid_to >= ?", now, now).
		Where("used_count < max_uses").
		Order("valid_to ASC").
		Limit(limit).
		Find(&coupons).Error
	return coupons, translateError("mã giảm giá", err)
}

// FeaturedReviews lists visible reviews rated at least minRating, newest first.
func (r HomeRepository) FeaturedReviews(ctx context.Context, minRating, limit int) ([]models.Review, error) {
	reviews := []models.Review{}
	err := r.DB.WithContext(ctx).Preload("User").
		Where("is_visible = ? AND rating >= ?", true, minRating).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, translateError("đánh giá", err)
}
