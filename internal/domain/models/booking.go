package models

import (
	"time"

	"busbooking/internal/domain"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Code      string      `gorm:"size:32;uniqueIndex;not null" json:"code"`
	UserID    uint        `gorm:"not null" json:"userId"`
	TripID    uint        `gorm:"not null" json:"tripId"`
	Trip      *Trip       `gorm:"foreignKey:TripID" json:"trip,omitempty"`
	CouponID  *uint       `json:"couponId"`
	Subtotal  int64       `gorm:"not null" json:"subtotal"`
	Discount  int64       `gorm:"not null" json:"discount"`
	Total     int64       `gorm:"not null" json:"total"`
	Status    OrderStatus `gorm:"size:16;not null" json:"status"`
	Tickets   []Ticket    `gorm:"foreignKey:OrderID" json:"tickets,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type TicketStatus string

const (
	TicketBooked    TicketStatus = "booked"
	TicketCancelled TicketStatus = "cancelled"
)

func (s TicketStatus) Valid() bool {
	return s == TicketBooked || s == TicketCancelled
}

type Ticket struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	OrderID        uint         `gorm:"not null" json:"orderId"`
	TripID         uint         `gorm:"not null" json:"tripId"`
	Trip           *Trip        `gorm:"foreignKey:TripID" json:"trip,omitempty"`
	UserID         uint         `gorm:"not null" json:"userId"`
	SeatNumber     int          `gorm:"not null" json:"seatNumber"`
	PassengerName  string       `gorm:"size:100;not null" json:"passengerName"`
	PassengerPhone string       `gorm:"size:20;not null" json:"passengerPhone"`
	PickupPointID  *uint        `json:"pickupPointId"`
	DropoffPointID *uint        `json:"dropoffPointId"`
	Price          int64        `gorm:"not null" json:"price"`
	Status         TicketStatus `gorm:"size:16;not null" json:"status"`
	RefundAmount   int64        `gorm:"not null" json:"refundAmount"`
	CancelledAt    *time.Time   `json:"cancelledAt"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.Status == "" {
		o.Status = OrderPending
	}
	return nil
}

// BeforeSave lets an empty status through: column updates by map run the
// hook on a zero Order.
func (o *Order) BeforeSave(*gorm.DB) error {
	if o.Status != "" && !o.Status.Valid() {
		return domain.ValidationError{Field: "status", Msg: "trạng thái đơn hàng không hợp lệ"}
	}
	return nil
}

func (t *Ticket) BeforeCreate(*gorm.DB) error {
	if t.Status == "" {
		t.Status = TicketBooked
	}
	return nil
}

func (t *Ticket) BeforeSave(*gorm.DB) error {
	if t.Status != "" && !t.Status.Valid() {
		return domain.ValidationError{Field: "status", Msg: "trạng thái vé không hợp lệ"}
	}
	return nil
}
