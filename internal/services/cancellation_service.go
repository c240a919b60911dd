package services

import (
	"context"
	"fmt"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"gorm.io/gorm"
)

// Refund applies the company's cancellation rules to a ticket cancelled
// hoursLeft hours before departure. The rule used is the active one with
// the longest notice not exceeding hoursLeft; without one nothing is
// refunded.
func Refund(price int64, hoursLeft float64, rules []models.CancellationRule) (int64, *models.CancellationRule) {
	var best *models.CancellationRule
	for i := range rules {
		r := &rules[i]
		if !r.IsActive || float64(r.TimeBeforeDeparture) > hoursLeft {
			continue
		}
		if best == nil || r.TimeBeforeDeparture > best.TimeBeforeDeparture {
			best = r
		}
	}
	if best == nil {
		return 0, nil
	}
	refund := price*int64(best.RefundPercentage)/100 - best.FeeAmount
	if refund < 0 {
		refund = 0
	}
	return refund, best
}

type CancellationService struct {
	DB        *gorm.DB
	Now       func() time.Time
	RequestID string
}

func (s CancellationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Cancel cancels one booked ticket of the caller (admins may cancel any),
// records the refund and returns the seat to the trip.
func (s CancellationService) Cancel(ctx context.Context, rc domain.RequestContext, ticketID domain.ID) (*models.Ticket, error) {
	now := s.now()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := repositories.OrderRepository{DB: tx}
		ticket, err := orders.TicketDetail(ctx, ticketID)
		if err != nil {
			return err
		}
		if ticket.UserID != rc.UserID && rc.Role != domain.RoleAdmin {
			return domain.ForbiddenError{Msg: "bạn không thể hủy vé của người khác"}
		}
		if ticket.Status != models.TicketBooked {
			return domain.ConflictError{Resource: "vé", Msg: "vé đã được hủy trước đó"}
		}
		if ticket.Trip == nil || ticket.Trip.BusRoute == nil {
			return domain.InternalError{Msg: "thiếu thông tin chuyến xe của vé"}
		}
		hoursLeft := ticket.Trip.DepartureTime.Sub(now).Hours()
		if hoursLeft <= 0 {
			return domain.ConflictError{Resource: "vé", Msg: "chuyến xe đã khởi hành, không thể hủy vé"}
		}
		rules, err := repositories.CompanyRepository{DB: tx}.CancellationRules(ctx, ticket.Trip.BusRoute.BusCompanyID)
		if err != nil {
			return err
		}
		refund, _ := Refund(ticket.Price, hoursLeft, rules)
		if err := orders.MarkTicketCancelled(ctx, ticket.ID, refund, now); err != nil {
			return err
		}
		if err := (repositories.TripRepository{DB: tx}).AdjustAvailableSeats(ctx, ticket.TripID, 1); err != nil {
			return err
		}
		return orders.CancelOrderIfEmpty(ctx, ticket.OrderID)
	})
	if err != nil {
		return nil, err
	}
	ticket, err := repositories.OrderRepository{DB: s.DB}.TicketDetail(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	utils.LogEvent(s.RequestID, "tickets", "cancel", fmt.Sprintf("ticket_id=%d refund=%d", ticket.ID, ticket.RefundAmount))
	return ticket, nil
}
