package repositories

import (
	"context"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TripRepository struct {
	DB *gorm.DB
}

// TripSearch selects scheduled trips of one route direction departing in
// [From, To).
type TripSearch struct {
	FromCityID domain.ID
	ToCityID   domain.ID
	From       time.Time
	To         time.Time
	Seats      int
}

var tripDetailPreloads = []string{
	"BusRoute.FromCity", "BusRoute.ToCity", "BusRoute.BusCompany", "Bus.TypeBus",
}

func (r TripRepository) Search(ctx context.Context, s TripSearch, f domain.ListFilter) (domain.Page[models.Trip], error) {
	f = f.Normalize()
	q := r.DB.WithContext(ctx).Model(&models.Trip{}).
		Joins("JOIN bus_routes ON bus_routes.id = trips.bus_route_id").
		Where("bus_routes.from_city_id = ? AND bus_routes.to_city_id = ?", s.FromCityID, s.ToCityID).
		Where("trips.status = ?", models.TripScheduled).
		Where("trips.departure_time >= ? AND trips.departure_time < ?", s.From.UTC(), s.To.UTC()).
		Where("trips.available_seats >= ?", s.Seats).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return domain.Page[models.Trip]{}, translateError("chuyến xe", err)
	}
	var trips []models.Trip
	find := q.Select("trips.*")
	for _, p := range tripDetailPreloads {
		find = find.Preload(p)
	}
	if err := find.Order("trips.departure_time ASC").Limit(f.PageSize).Offset(f.Offset()).Find(&trips).Error; err != nil {
		return domain.Page[models.Trip]{}, translateError("chuyến xe", err)
	}
	return domain.NewPage(trips, total, f), nil
}

// Detail loads a trip with its route, bus and active points in time order.
func (r TripRepository) Detail(ctx context.Context, id domain.ID) (*models.Trip, error) {
	q := r.DB.WithContext(ctx)
	for _, p := range tripDetailPreloads {
		q = q.Preload(p)
	}
	q = q.Preload("Points", func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true).Order("time ASC")
	}).Preload("Points.Point")

	var trip models.Trip
	if err := q.First(&trip, id).Error; err != nil {
		return nil, translateError("chuyến xe", err)
	}
	return &trip, nil
}

// GetForBooking reads a trip with its route. With lock set it takes a row
// lock where the dialect supports one.
func (r TripRepository) GetForBooking(ctx context.Context, id domain.ID, lock bool) (*models.Trip, error) {
	q := r.DB.WithContext(ctx)
	if lock && r.DB.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var trip models.Trip
	if err := q.Preload("BusRoute").First(&trip, id).Error; err != nil {
		return nil, translateError("chuyến xe", err)
	}
	return &trip, nil
}

// HasPoint reports whether point serves the trip as an active stop of the
// given type.
func (r TripRepository) HasPoint(ctx context.Context, tripID, pointID domain.ID, typ models.PointType) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.TripPoint{}).
		Joins("JOIN points ON points.id = trip_points.point_id").
		Where("trip_points.trip_id = ? AND trip_points.point_id = ?", tripID, pointID).
		Where("trip_points.is_active = ? AND points.type = ?", true, typ).
		Count(&n).Error
	if err != nil {
		return false, translateError("điểm đón/trả", err)
	}
	return n > 0, nil
}

// BookedSeats returns seat numbers held by booked tickets on the trip.
func (r TripRepository) BookedSeats(ctx context.Context, tripID domain.ID) ([]int, error) {
	var seats []int
	err := r.DB.WithContext(ctx).Model(&models.Ticket{}).
		Where("trip_id = ? AND status = ?", tripID, models.TicketBooked).
		Order("seat_number ASC").
		Pluck("seat_number", &seats).Error
	if err != nil {
		return nil, translateError("vé", err)
	}
	return seats, nil
}

// AdjustAvailableSeats adds delta to available_seats, refusing to go
// below zero or above total_seats.
func (r TripRepository) AdjustAvailableSeats(ctx context.Context, tripID domain.ID, delta int) error {
	q := r.DB.WithContext(ctx).Model(&models.Trip{}).Where("id = ?", tripID)
	if delta < 0 {
		q = q.Where("available_seats >= ?", -delta)
	} else {
		q = q.Where("available_seats + ? <= total_seats", delta)
	}
	res := q.UpdateColumn("available_seats", gorm.Expr("available_seats + ?", delta))
	if res.Error != nil {
		return translateError("chuyến xe", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ConflictError{Resource: "chuyến xe", Msg: "không đủ ghế trống"}
	}
	return nil
}
