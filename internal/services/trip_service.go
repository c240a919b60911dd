package services

import (
	"context"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
	"busbooking/internal/validation"
)

type TripService struct {
	Trips repositories.TripRepository
	// Location is the zone a departure date is read in. Defaults to time.Local.
	Location *time.Location
}

// Seat is one cell of a trip's seat map.
type Seat struct {
	Number int  `json:"number"`
	Booked bool `json:"booked"`
}

type SeatMap struct {
	TripID         domain.ID `json:"tripId"`
	TotalSeats     int       `json:"totalSeats"`
	AvailableSeats int       `json:"availableSeats"`
	Seats          []Seat    `json:"seats"`
}

// TripSummary adds display strings to a trip search result.
type TripSummary struct {
	models.Trip
	DepartureLabel string `json:"departureLabel"`
	ArrivalLabel   string `json:"arrivalLabel"`
	DepartureDate  string `json:"departureDate"`
	Duration       string `json:"duration"`
	PriceLabel     string `json:"priceLabel"`
}

func summarize(t models.Trip) TripSummary {
	return TripSummary{
		Trip:           t,
		DepartureLabel: utils.FormatTime(t.DepartureTime),
		ArrivalLabel:   utils.FormatTime(t.ArrivalTime),
		DepartureDate:  utils.FormatDate(t.DepartureTime),
		Duration:       utils.FindDuration(t.DepartureTime, t.ArrivalTime),
		PriceLabel:     utils.ConvertMoney(t.Price),
	}
}

// Search finds scheduled trips on the requested day with enough seats.
func (s TripService) Search(ctx context.Context, in validation.TripSearch) (domain.Page[TripSummary], error) {
	if err := validation.Check(in); err != nil {
		return domain.Page[TripSummary]{}, err
	}
	day, err := utils.ParseDay(in.DepartureDate, s.Location)
	if err != nil {
		return domain.Page[TripSummary]{}, domain.ValidationError{Field: "departureDate", Msg: "ngày khởi hành không hợp lệ", Err: err}
	}
	seats := in.Seats
	if seats <= 0 {
		seats = 1
	}
	f := domain.ListFilter{PageSize: in.PageSize, PageNumber: in.PageNumber}.Normalize()
	page, err := s.Trips.Search(ctx, repositories.TripSearch{
		FromCityID: in.FromCityID,
		ToCityID:   in.ToCityID,
		From:       day,
		To:         day.AddDate(0, 0, 1),
		Seats:      seats,
	}, f)
	if err != nil {
		return domain.Page[TripSummary]{}, err
	}
	items := make([]TripSummary, 0, len(page.Items))
	for _, t := range page.Items {
		items = append(items, summarize(t))
	}
	return domain.Page[TripSummary]{
		Items:       items,
		TotalItems:  page.TotalItems,
		TotalPage:   page.TotalPage,
		CurrentPage: page.CurrentPage,
		PageSize:    page.PageSize,
	}, nil
}

func (s TripService) Detail(ctx context.Context, id domain.ID) (*TripSummary, error) {
	t, err := s.Trips.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	out := summarize(*t)
	return &out, nil
}

// SeatMap lists seats 1..totalSeats with their booked flag.
func (s TripService) SeatMap(ctx context.Context, id domain.ID) (*SeatMap, error) {
	t, err := s.Trips.GetForBooking(ctx, id, false)
	if err != nil {
		return nil, err
	}
	booked, err := s.Trips.BookedSeats(ctx, id)
	if err != nil {
		return nil, err
	}
	taken := make(map[int]bool, len(booked))
	for _, n := range booked {
		taken[n] = true
	}
	seats := make([]Seat, 0, t.TotalSeats)
	for n := 1; n <= t.TotalSeats; n++ {
		seats = append(seats, Seat{Number: n, Booked: taken[n]})
	}
	return &SeatMap{TripID: t.ID, TotalSeats: t.TotalSeats, AvailableSeats: t.AvailableSeats, Seats: seats}, nil
}
