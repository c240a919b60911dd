package repositories

import (
	"busbooking/internal/domain/models"

	"gorm.io/gorm"
)

func couponActiveScope(active bool) Scope {
	return func(q *gorm.DB) *gorm.DB {
		if active {
			return q.Where("status = ?", models.CouponActive)
		}
		return q.Where("status <> ?", models.CouponActive)
	}
}

func NewLocationRepository(db *gorm.DB) CrudRepository[models.Location] {
	return NewCrudRepository[models.Location](db, "địa điểm", ListOptions{
		SearchColumns:    []string{"name"},
		ActiveColumn:     "is_active",
		TypeOrCityColumn: "city_id",
		Preloads:         []string{"City"},
	})
}

func NewPointRepository(db *gorm.DB) CrudRepository[models.Point] {
	return NewCrudRepository[models.Point](db, "điểm đón/trả", ListOptions{
		SearchColumns:    []string{"location_name"},
		ActiveColumn:     "is_active",
		TypeOrCityColumn: "type",
	})
}

func NewCouponRepository(db *gorm.DB) CrudRepository[models.Coupon] {
	return NewCrudRepository[models.Coupon](db, "mã giảm giá", ListOptions{
		SearchColumns:    []string{"code", "description"},
		ActiveScope:      couponActiveScope,
		TypeOrCityColumn: "discount_type",
	})
}

func NewStaffRepository(db *gorm.DB) CrudRepository[models.Staff] {
	return NewCrudRepository[models.Staff](db, "nhân viên", ListOptions{
		SearchColumns:    []string{"full_name", "email", "phone"},
		ActiveColumn:     "is_active",
		TypeOrCityColumn: "bus_company_id",
	})
}

func NewUserCrudRepository(db *gorm.DB) CrudRepository[models.User] {
	return NewCrudRepository[models.User](db, "người dùng", ListOptions{
		SearchColumns:    []string{"full_name", "email", "phone"},
		ActiveColumn:     "is_active",
		TypeOrCityColumn: "role_id",
		Preloads:         []string{"Role"},
	})
}

func NewReviewRepository(db *gorm.DB) CrudRepository[models.Review] {
	return NewCrudRepository[models.Review](db, "đánh giá", ListOptions{
		SearchColumns:    []string{"comment_text"},
		ActiveColumn:     "is_visible",
		TypeOrCityColumn: "bus_company_id",
		Preloads:         []string{"User"},
	})
}

func NewTripCrudRepository(db *gorm.DB) CrudRepository[models.Trip] {
	return NewCrudRepository[models.Trip](db, "chuyến xe", ListOptions{
		SearchColumns:    []string{"status"},
		TypeOrCityColumn: "bus_route_id",
		Preloads:         []string{"BusRoute.FromCity", "BusRoute.ToCity", "Bus"},
		Order:            "departure_time DESC",
	})
}

func NewTicketRepository(db *gorm.DB) CrudRepository[models.Ticket] {
	return NewCrudRepository[models.Ticket](db, "vé", ListOptions{
		SearchColumns:    []string{"passenger_name", "passenger_phone"},
		TypeOrCityColumn: "trip_id",
	})
}

func NewPartnerRepository(db *gorm.DB) CrudRepository[models.Partner] {
	return NewCrudRepository[models.Partner](db, "đối tác", ListOptions{
		SearchColumns:    []string{"full_name", "company", "email", "phone"},
		TypeOrCityColumn: "status",
	})
}

func NewCompanyPolicyRepository(db *gorm.DB) CrudRepository[models.CompanyPolicy] {
	return NewCrudRepository[models.CompanyPolicy](db, "chính sách", ListOptions{
		SearchColumns:    []string{"title"},
		ActiveColumn:     "is_active",
		TypeOrCityColumn: "policy_type",
	})
}

func NewCancellationRuleRepository(db *gorm.DB) CrudRepository[models.CancellationRule] {
	return NewCrudRepository[models.CancellationRule](db, "quy định hủy vé", ListOptions{
		ActiveColumn:     "is_active",
		TypeOrCityColumn: "bus_company_id",
		Order:            "time_before_departure DESC",
	})
}

func NewCityRepository(db *gorm.DB) CrudRepository[models.City] {
	return NewCrudRepository[models.City](db, "thành phố", ListOptions{
		SearchColumns: []string{"name"},
		ActiveColumn:  "is_active",
		Order:         "name ASC",
	})
}

func NewBusCompanyRepository(db *gorm.DB) CrudRepository[models.BusCompany] {
	return NewCrudRepository[models.BusCompany](db, "nhà xe", ListOptions{
		SearchColumns: []string{"name", "email", "phone"},
		ActiveColumn:  "is_active",
	})
}

func NewTypeBusRepository(db *gorm.DB) CrudRepository[models.TypeBus] {
	return NewCrudRepository[models.TypeBus](db, "loại xe", ListOptions{
		SearchColumns:    []string{"name"},
		TypeOrCityColumn: "bus_company_id",
	})
}

func NewBusRepository(db *gorm.DB) CrudRepository[models.Bus] {
	return NewCrudRepository[models.Bus](db, "xe", ListOptions{
		SearchColumns:    []string{"license_plate"},
		ActiveColumn:     "is_active",
		TypeOrCityColumn: "bus_company_id",
		Preloads:         []string{"TypeBus"},
	})
}

func NewBusRouteRepository(db *gorm.DB) CrudRepository[models.BusRoute] {
	return NewCrudRepository[models.BusRoute](db, "tuyến xe", ListOptions{
		ActiveColumn:     "is_active",
		TypeOrCityColumn: "bus_company_id",
		Preloads:         []string{"FromCity", "ToCity", "BusCompany"},
	})
}

func NewTripPointRepository(db *gorm.DB) CrudRepository[models.TripPoint] {
	return NewCrudRepository[models.TripPoint](db, "điểm dừng của chuyến", ListOptions{
		ActiveColumn:     "is_active",
		TypeOrCityColumn: "trip_id",
		Preloads:         []string{"Point"},
		Order:            "time ASC",
	})
}
