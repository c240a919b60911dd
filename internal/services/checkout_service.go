package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
	"busbooking/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckoutService books seats on one trip for the signed-in customer.
type CheckoutService struct {
	DB        *gorm.DB
	Now       func() time.Time
	RequestID string
}

func (s CheckoutService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func newOrderCode() string {
	return "BK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func checkPoint(ctx context.Context, trips repositories.TripRepository, tripID domain.ID, id *uint, typ models.PointType, field string) error {
	if id == nil {
		return nil
	}
	ok, err := trips.HasPoint(ctx, tripID, *id, typ)
	if err != nil {
		return err
	}
	if !ok {
		msg := "Điểm đón không thuộc chuyến xe này"
		if typ == models.PointDropoff {
			msg = "Điểm trả không thuộc chuyến xe này"
		}
		return domain.ValidationError{Field: field, Msg: msg, Fields: []domain.FieldError{{Field: field, Message: msg}}}
	}
	return nil
}

// Checkout creates a pending order with one ticket per passenger. Seats,
// coupon and availability are checked and written in one transaction.
func (s CheckoutService) Checkout(ctx context.Context, userID domain.ID, in validation.Checkout) (*models.Order, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	seen := make(map[int]bool, len(in.Passengers))
	for _, p := range in.Passengers {
		if seen[p.SeatNumber] {
			return nil, domain.ValidationError{Field: "passengers", Msg: fmt.Sprintf("Ghế %d bị chọn trùng", p.SeatNumber)}
		}
		seen[p.SeatNumber] = true
	}
	now := s.now()

	var order *models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		trips := repositories.TripRepository{DB: tx}
		trip, err := trips.GetForBooking(ctx, in.TripID, true)
		if err != nil {
			return err
		}
		if trip.Status != models.TripScheduled || !trip.DepartureTime.After(now) {
			return domain.ConflictError{Resource: "chuyến xe", Msg: "chuyến xe không còn nhận đặt vé"}
		}
		for _, p := range in.Passengers {
			if p.SeatNumber > trip.TotalSeats {
				return domain.ValidationError{Field: "passengers", Msg: fmt.Sprintf("Ghế %d không tồn tại trên xe", p.SeatNumber)}
			}
		}
		booked, err := trips.BookedSeats(ctx, trip.ID)
		if err != nil {
			return err
		}
		for _, n := range booked {
			if seen[n] {
				return domain.ConflictError{Resource: "ghế", Msg: fmt.Sprintf("ghế %d đã có người đặt", n)}
			}
		}
		if err := checkPoint(ctx, trips, trip.ID, in.PickupPointID, models.PointPickup, "pickupPointId"); err != nil {
			return err
		}
		if err := checkPoint(ctx, trips, trip.ID, in.DropoffPointID, models.PointDropoff, "dropoffPointId"); err != nil {
			return err
		}

		subtotal := trip.Price * int64(len(in.Passengers))
		var coupon *models.Coupon
		var discount int64
		if code := strings.TrimSpace(in.CouponCode); code != "" {
			coupon, err = repositories.CouponUsageRepository{DB: tx}.FindByCode(ctx, code)
			if err != nil {
				if domain.IsNotFound(err) {
					return couponError("Mã giảm giá không tồn tại")
				}
				return err
			}
			if discount, err = applyCoupon(coupon, trip, subtotal, now); err != nil {
				return err
			}
		}

		order = &models.Order{
			Code:     newOrderCode(),
			UserID:   userID,
			TripID:   trip.ID,
			Subtotal: subtotal,
			Discount: discount,
			Total:    subtotal - discount,
			Status:   models.OrderPending,
		}
		if coupon != nil {
			order.CouponID = &coupon.ID
		}
		tickets := make([]models.Ticket, 0, len(in.Passengers))
		for _, p := range in.Passengers {
			tickets = append(tickets, models.Ticket{
				TripID:         trip.ID,
				UserID:         userID,
				SeatNumber:     p.SeatNumber,
				PassengerName:  utils.NormalizeSpace(p.FullName),
				PassengerPhone: strings.TrimSpace(p.Phone),
				PickupPointID:  in.PickupPointID,
				DropoffPointID: in.DropoffPointID,
				Price:          trip.Price,
				Status:         models.TicketBooked,
			})
		}
		if err := (repositories.OrderRepository{DB: tx}).CreateWithTickets(ctx, order, tickets); err != nil {
			return err
		}
		if coupon != nil {
			if err := (repositories.CouponUsageRepository{DB: tx}).Redeem(ctx, coupon.ID, userID, order.ID, now); err != nil {
				return err
			}
		}
		return trips.AdjustAvailableSeats(ctx, trip.ID, -len(in.Passengers))
	})
	if err != nil {
		return nil, err
	}
	utils.LogEvent(s.RequestID, "checkout", "create_order",
		fmt.Sprintf("order=%s user_id=%d trip_id=%d seats=%d total=%d", order.Code, userID, order.TripID, len(order.Tickets), order.Total))
	return order, nil
}
