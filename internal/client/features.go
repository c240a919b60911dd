package client

import (
	"context"
	"fmt"
	"net/http"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/services"
	"busbooking/internal/validation"
)

// Home page data.

func (c *Client) FeaturedRoutes(ctx context.Context) ([]repositories.FeaturedRoute, error) {
	var out []repositories.FeaturedRoute
	err := c.do(ctx, http.MethodGet, "/home/featured-routes", nil, nil, &out)
	return out, err
}

func (c *Client) ActiveCoupons(ctx context.Context) ([]models.Coupon, error) {
	var out []models.Coupon
	err := c.do(ctx, http.MethodGet, "/home/active-coupons", nil, nil, &out)
	return out, err
}

func (c *Client) FeaturedReviews(ctx context.Context) ([]models.Review, error) {
	var out []models.Review
	err := c.do(ctx, http.MethodGet, "/home/featured-reviews", nil, nil, &out)
	return out, err
}

// Trips.

func (c *Client) SearchTrips(ctx context.Context, in validation.TripSearch) (domain.Page[services.TripSummary], error) {
	var page domain.Page[services.TripSummary]
	err := c.do(ctx, http.MethodPost, "/trips/search", nil, in, &page)
	return page, err
}

func (c *Client) TripDetail(ctx context.Context, id domain.ID) (*services.TripSummary, error) {
	var out services.TripSummary
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/trips/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TripSeats(ctx context.Context, id domain.ID) (*services.SeatMap, error) {
	var out services.SeatMap
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/trips/seats/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Auth.

// Login stores the returned access token on success.
func (c *Client) Login(ctx context.Context, in validation.SignIn) (*services.LoginResult, error) {
	var out services.LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, in, &out); err != nil {
		return nil, err
	}
	if err := c.tokens.SetToken(out.AccessToken); err != nil {
		return nil, &Error{Message: FallbackMessage, Err: err}
	}
	return &out, nil
}

func (c *Client) Logout() error { return c.tokens.Clear() }

func (c *Client) Register(ctx context.Context, in validation.SignUp) (*models.PublicUser, error) {
	return c.profileCall(ctx, http.MethodPost, "/auth/register", in)
}

func (c *Client) Me(ctx context.Context) (*models.PublicUser, error) {
	return c.profileCall(ctx, http.MethodGet, "/auth/me", nil)
}

func (c *Client) UpdateProfile(ctx context.Context, in validation.UpdateProfile) (*models.PublicUser, error) {
	return c.profileCall(ctx, http.MethodPatch, "/auth/profile", in)
}

func (c *Client) UpdateAvatar(ctx context.Context, in validation.UpdateAvatar) (*models.PublicUser, error) {
	return c.profileCall(ctx, http.MethodPatch, "/auth/profile/avatar", in)
}

func (c *Client) ChangePassword(ctx context.Context, in validation.ChangePassword) error {
	return c.do(ctx, http.MethodPatch, "/auth/profile/password", nil, in, nil)
}

func (c *Client) profileCall(ctx context.Context, method, path string, body any) (*models.PublicUser, error) {
	var out models.PublicUser
	if err := c.do(ctx, method, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders.

func (c *Client) Checkout(ctx context.Context, in validation.Checkout) (*models.Order, error) {
	var out models.Order
	if err := c.do(ctx, http.MethodPost, "/orders/checkout", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyOrders(ctx context.Context, f domain.ListFilter) (domain.Page[models.Order], error) {
	var page domain.Page[models.Order]
	err := c.do(ctx, http.MethodGet, "/orders/mine", listQuery(f), nil, &page)
	return page, err
}

func (c *Client) ValidateCoupon(ctx context.Context, in validation.CouponCheck) (*services.CouponQuote, error) {
	var out services.CouponQuote
	if err := c.do(ctx, http.MethodPost, "/coupons/validate", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelTicket(ctx context.Context, id domain.ID) (*models.Ticket, error) {
	var out models.Ticket
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/tickets/%d/cancel", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ETicket downloads the PDF of a ticket.
func (c *Client) ETicket(ctx context.Context, id domain.ID) ([]byte, error) {
	raw, _, err := c.Raw(ctx, fmt.Sprintf("/tickets/%d/e-ticket", id))
	return raw, err
}
