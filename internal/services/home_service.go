package services

import (
	"context"
	"time"

	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
)

const (
	FeaturedRoutesLimit  = 6
	ActiveCouponsLimit   = 10
	FeaturedReviewsLimit = 6
	FeaturedReviewRating = 4
)

type HomeService struct {
	Home repositories.HomeRepository
	Now  func() time.Time
}

func (s HomeService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s HomeService) FeaturedRoutes(ctx context.Context) ([]repositories.FeaturedRoute, error) {
	return s.Home.FeaturedRoutes(ctx, FeaturedRoutesLimit)
}

func (s HomeService) ActiveCoupons(ctx context.Context) ([]models.Coupon, error) {
	return s.Home.ActiveCoupons(ctx, s.now(), ActiveCouponsLimit)
}

func (s HomeService) FeaturedReviews(ctx context.Context) ([]models.Review, error) {
	return s.Home.FeaturedReviews(ctx, FeaturedReviewRating, FeaturedReviewsLimit)
}
