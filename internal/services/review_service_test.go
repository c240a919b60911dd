package services

import (
	"context"
	"testing"

	"busbooking/internal/domain"
	"busbooking/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewSubmit(t *testing.T) {
	s := seed(t, 10)
	ctx := context.Background()
	svc := ReviewService{DB: s.db}
	in := validation.Review{TripID: s.f.Trip.ID, Rating: 4, CommentText: "  Xe sạch, đúng giờ  "}

	_, err := svc.Submit(ctx, s.user.ID, in)
	assert.True(t, domain.IsForbidden(err), "%v", err)

	_, err = CheckoutService{DB: s.db}.Checkout(ctx, s.user.ID, validation.Checkout{
		TripID: s.f.Trip.ID, Passengers: passengers(2),
	})
	require.NoError(t, err)

	review, err := svc.Submit(ctx, s.user.ID, in)
	require.NoError(t, err)
	assert.Equal(t, s.user.ID, review.UserID)
	assert.Equal(t, "Xe sạch, đúng giờ", review.CommentText)
	assert.True(t, review.IsVisible)
	require.NotNil(t, review.BusCompanyID)
	assert.Equal(t, s.f.Company.ID, *review.BusCompanyID)

	_, err = svc.Submit(ctx, s.user.ID, in)
	assert.True(t, domain.IsConflict(err), "%v", err)
}

func TestReviewSubmitValidation(t *testing.T) {
	s := seed(t, 10)
	ctx := context.Background()
	svc := ReviewService{DB: s.db}

	_, err := svc.Submit(ctx, s.user.ID, validation.Review{TripID: s.f.Trip.ID, Rating: 6})
	assert.True(t, domain.IsValidation(err), "%v", err)

	_, err = svc.Submit(ctx, s.user.ID, validation.Review{TripID: 9999, Rating: 5})
	assert.True(t, domain.IsNotFound(err), "%v", err)
}
