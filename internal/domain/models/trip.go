package models

import (
	"time"

	"busbooking/internal/domain"

	"gorm.io/gorm"
)

type TripStatus string

const (
	TripScheduled TripStatus = "scheduled"
	TripDeparted  TripStatus = "departed"
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
)

func (s TripStatus) Valid() bool {
	switch s {
	case TripScheduled, TripDeparted, TripCompleted, TripCancelled:
		return true
	}
	return false
}

type Trip struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	BusRouteID     uint        `gorm:"not null" json:"busRoutesId"`
	BusRoute       *BusRoute   `gorm:"foreignKey:BusRouteID" json:"busRoute,omitempty"`
	BusID          uint        `gorm:"not null" json:"busId"`
	Bus            *Bus        `gorm:"foreignKey:BusID" json:"bus,omitempty"`
	DepartureTime  time.Time   `gorm:"not null" json:"departureTime"`
	ArrivalTime    time.Time   `gorm:"not null" json:"arrivalTime"`
	Price          int64       `gorm:"not null" json:"price"`
	Status         TripStatus  `gorm:"size:16;not null" json:"status"`
	TotalSeats     int         `gorm:"not null" json:"totalSeats"`
	AvailableSeats int         `gorm:"not null" json:"availableSeats"`
	Points         []TripPoint `gorm:"foreignKey:TripID" json:"points,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// BeforeCreate opens every seat of a new trip unless a count was given.
func (t *Trip) BeforeCreate(*gorm.DB) error {
	if t.AvailableSeats == 0 {
		t.AvailableSeats = t.TotalSeats
	}
	return nil
}

// BeforeSave keeps times in UTC so range queries compare consistently
// across dialects.
func (t *Trip) BeforeSave(*gorm.DB) error {
	if t.Status == "" {
		t.Status = TripScheduled
	}
	if !t.Status.Valid() {
		return domain.ValidationError{Field: "status", Msg: "trạng thái chuyến không hợp lệ"}
	}
	if !t.ArrivalTime.After(t.DepartureTime) {
		return domain.ValidationError{Field: "arrivalTime", Msg: "giờ đến phải sau giờ khởi hành"}
	}
	if t.Price < 0 {
		return domain.ValidationError{Field: "price", Msg: "giá vé không được âm"}
	}
	if t.AvailableSeats > t.TotalSeats || t.AvailableSeats < 0 {
		return domain.ValidationError{Field: "availableSeats", Msg: "số ghế trống không hợp lệ"}
	}
	t.DepartureTime = t.DepartureTime.UTC()
	t.ArrivalTime = t.ArrivalTime.UTC()
	return nil
}
