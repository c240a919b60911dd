package services

import (
	"context"
	"fmt"
	"strings"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
	"busbooking/internal/validation"

	"gorm.io/gorm"
)

// ReviewService lets a customer rate a trip they hold a ticket for.
type ReviewService struct {
	DB        *gorm.DB
	RequestID string
}

func (s ReviewService) Submit(ctx context.Context, userID domain.ID, in validation.Review) (*models.Review, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}

	trip, err := repositories.TripRepository{DB: s.DB}.GetForBooking(ctx, in.TripID, false)
	if err != nil {
		return nil, err
	}
	ok, err := repositories.OrderRepository{DB: s.DB}.HasBookedTicket(ctx, userID, trip.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ForbiddenError{Msg: "Bạn chỉ có thể đánh giá chuyến xe đã đặt vé"}
	}

	var existing int64
	if err := s.DB.WithContext(ctx).Model(&models.Review{}).
		Where("user_id = ? AND trip_id = ?", userID, trip.ID).
		Count(&existing).Error; err != nil {
		return nil, domain.InternalError{Msg: "không thể kiểm tra đánh giá", Err: err}
	}
	if existing > 0 {
		return nil, domain.ConflictError{Resource: "đánh giá", Msg: "Bạn đã đánh giá chuyến xe này"}
	}

	review := &models.Review{
		UserID:      userID,
		TripID:      trip.ID,
		Rating:      in.Rating,
		CommentText: strings.TrimSpace(in.CommentText),
		IsVisible:   true,
	}
	if trip.BusRoute != nil {
		companyID := trip.BusRoute.BusCompanyID
		review.BusCompanyID = &companyID
	}
	if err := repositories.NewReviewRepository(s.DB).Create(ctx, review); err != nil {
		return nil, err
	}
	utils.LogEvent(s.RequestID, "reviews", "submit", fmt.Sprintf("user_id=%d trip_id=%d rating=%d", userID, trip.ID, review.Rating))
	return review, nil
}
