package repositories

import (
	"context"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	DB *gorm.DB
}

// CreateWithTickets inserts the order and then its tickets.
func (r OrderRepository) CreateWithTickets(ctx context.Context, order *models.Order, tickets []models.Ticket) error {
	db := r.DB.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(order).Error; err != nil {
		return translateError("đơn hàng", err)
	}
	for i := range tickets {
		tickets[i].OrderID = order.ID
	}
	if len(tickets) > 0 {
		if err := db.Omit(clause.Associations).Create(&tickets).Error; err != nil {
			return translateError("vé", err)
		}
	}
	order.Tickets = tickets
	return nil
}

func (r OrderRepository) ListByUser(ctx context.Context, userID domain.ID, f domain.ListFilter) (domain.Page[models.Order], error) {
	f = f.Normalize()
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID).Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return domain.Page[models.Order]{}, translateError("đơn hàng", err)
	}
	var orders []models.Order
	err := q.Preload("Tickets", func(db *gorm.DB) *gorm.DB { return db.Order("seat_number ASC") }).
		Preload("Trip.BusRoute.FromCity").Preload("Trip.BusRoute.ToCity").
		Order("id DESC").Limit(f.PageSize).Offset(f.Offset()).
		Find(&orders).Error
	if err != nil {
		return domain.Page[models.Order]{}, translateError("đơn hàng", err)
	}
	return domain.NewPage(orders, total, f), nil
}

func (r OrderRepository) GetOrder(ctx context.Context, id domain.ID) (*models.Order, error) {
	var o models.Order
	if err := r.DB.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, translateError("đơn hàng", err)
	}
	return &o, nil
}

// TicketDetail loads a ticket with its trip, route and bus.
func (r OrderRepository) TicketDetail(ctx context.Context, id domain.ID) (*models.Ticket, error) {
	var t models.Ticket
	err := r.DB.WithContext(ctx).
		Preload("Trip.BusRoute.FromCity").Preload("Trip.BusRoute.ToCity").
		Preload("Trip.BusRoute.BusCompany").Preload("Trip.Bus").
		First(&t, id).Error
	if err != nil {
		return nil, translateError("vé", err)
	}
	return &t, nil
}

// PointName resolves a pickup/dropoff point id to its label.
func (r OrderRepository) PointName(ctx context.Context, id *uint) string {
	if id == nil {
		return ""
	}
	var p models.Point
	if err := r.DB.WithContext(ctx).Select("location_name").First(&p, *id).Error; err != nil {
		return ""
	}
	return p.LocationName
}

// MarkTicketCancelled flips a booked ticket to cancelled. It fails with a
// conflict when the ticket was no longer booked.
func (r OrderRepository) MarkTicketCancelled(ctx context.Context, id domain.ID, refund int64, at time.Time) error {
	res := r.DB.WithContext(ctx).Model(&models.Ticket{}).
		Where("id = ? AND status = ?", id, models.TicketBooked).
		Updates(map[string]any{
			"status":        models.TicketCancelled,
			"refund_amount": refund,
			"cancelled_at":  at.UTC(),
		})
	if res.Error != nil {
		return translateError("vé", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ConflictError{Resource: "vé", Msg: "vé đã được hủy trước đó"}
	}
	return nil
}

// CancelOrderIfEmpty marks the order cancelled once none of its tickets
// remain booked.
func (r OrderRepository) CancelOrderIfEmpty(ctx context.Context, orderID domain.ID) error {
	var booked int64
	db := r.DB.WithContext(ctx)
	if err := db.Model(&models.Ticket{}).Where("order_id = ? AND status = ?", orderID, models.TicketBooked).Count(&booked).Error; err != nil {
		return translateError("vé", err)
	}
	if booked > 0 {
		return nil
	}
	err := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", models.OrderCancelled).Error
	return translateError("đơn hàng", err)
}

// HasBookedTicket reports whether the user holds a booked ticket on the trip.
func (r OrderRepository) HasBookedTicket(ctx context.Context, userID, tripID domain.ID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Ticket{}).
		Where("user_id = ? AND trip_id = ? AND status = ?", userID, tripID, models.TicketBooked).
		Count(&n).Error
	if err != nil {
		return false, translateError("vé", err)
	}
	return n > 0, nil
}
