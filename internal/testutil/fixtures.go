package testutil

import (
	"testing"
	"time"

	"busbooking/internal/domain/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Role ids as seeded by the first migration.
const (
	RoleUserID    uint = 1
	RoleCompanyID uint = 2
	RoleAdminID   uint = 3
)

// Fixture is a small consistent catalog: two cities, one company with a
// bus, a route between the cities and one scheduled trip departing at
// 08:00 UTC two days from now.
type Fixture struct {
	From    models.City
	To      models.City
	Company models.BusCompany
	TypeBus models.TypeBus
	Bus     models.Bus
	Route   models.BusRoute
	Trip    models.Trip
}

func mustCreate(t testing.TB, db *gorm.DB, v any) {
	t.Helper()
	require.NoError(t, db.Create(v).Error)
}

// Seed inserts the fixture catalog. seats sizes the bus and the trip.
func Seed(t testing.TB, db *gorm.DB, seats int) Fixture {
	t.Helper()
	var f Fixture
	f.From = models.City{Name: "Hà Nội", IsActive: true}
	f.To = models.City{Name: "Đà Nẵng", IsActive: true}
	mustCreate(t, db, &f.From)
	mustCreate(t, db, &f.To)

	f.Company = models.BusCompany{Name: "Nhà xe Phương Nam", Phone: "0912345678", IsActive: true}
	mustCreate(t, db, &f.Company)

	f.TypeBus = models.TypeBus{Name: "Giường nằm", TotalSeats: seats, BusCompanyID: &f.Company.ID}
	mustCreate(t, db, &f.TypeBus)

	f.Bus = models.Bus{BusCompanyID: f.Company.ID, TypeBusID: f.TypeBus.ID, LicensePlate: "29B-12345", IsActive: true}
	mustCreate(t, db, &f.Bus)

	f.Route = models.BusRoute{
		BusCompanyID:    f.Company.ID,
		FromCityID:      f.From.ID,
		ToCityID:        f.To.ID,
		Distance:        760,
		DurationMinutes: 900,
		BasePrice:       450000,
		IsActive:        true,
	}
	mustCreate(t, db, &f.Route)

	d := time.Now().UTC().Add(48 * time.Hour)
	dep := time.Date(d.Year(), d.Month(), d.Day(), 8, 0, 0, 0, time.UTC)
	f.Trip = NewTrip(t, db, f.Route.ID, f.Bus.ID, dep, seats, 450000)
	return f
}

// NewTrip inserts a scheduled trip with every seat available.
func NewTrip(t testing.TB, db *gorm.DB, routeID, busID uint, dep time.Time, seats int, price int64) models.Trip {
	t.Helper()
	trip := models.Trip{
		BusRouteID:     routeID,
		BusID:          busID,
		DepartureTime:  dep,
		ArrivalTime:    dep.Add(15 * time.Hour),
		Price:          price,
		Status:         models.TripScheduled,
		TotalSeats:     seats,
		AvailableSeats: seats,
	}
	mustCreate(t, db, &trip)
	return trip
}

// NewUser inserts an active user with the given role id and password hash.
func NewUser(t testing.TB, db *gorm.DB, email string, roleID uint, passwordHash string) models.User {
	t.Helper()
	u := models.User{
		FullName:     "Nguyễn Văn An",
		Email:        email,
		Phone:        "0912345678",
		PasswordHash: passwordHash,
		RoleID:       roleID,
		IsActive:     true,
	}
	mustCreate(t, db, &u)
	return u
}
