package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Table shapes as of the first release. They are frozen here so later
// model changes do not rewrite history.

type v1Role struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:32;uniqueIndex;not null"`
}

func (v1Role) TableName() string { return "roles" }

type v1User struct {
	ID           uint   `gorm:"primaryKey"`
	FullName     string `gorm:"size:100;not null"`
	Email        string `gorm:"size:191;uniqueIndex;not null"`
	Phone        string `gorm:"size:20;index"`
	PasswordHash string `gorm:"size:255;not null"`
	AvatarURL    string `gorm:"size:512"`
	RoleID       uint   `gorm:"not null;index"`
	Role         v1Role `gorm:"constraint:OnDelete:RESTRICT"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (v1User) TableName() string { return "users" }

type v1City struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (v1City) TableName() string { return "cities" }

type v1Location struct {
	ID        uint   `gorm:"primaryKey"`
	CityID    uint   `gorm:"not null;index"`
	City      v1City `gorm:"constraint:OnDelete:CASCADE"`
	Name      string `gorm:"size:150;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (v1Location) TableName() string { return "locations" }

type v1BusCompany struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:150;not null"`
	Phone     string  `gorm:"size:20"`
	Email     string  `gorm:"size:191"`
	Address   string  `gorm:"size:255"`
	OwnerID   *uint   `gorm:"index"`
	Owner     *v1User `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
	IsActive  bool    `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (v1BusCompany) TableName() string { return "bus_companies" }

type v1TypeBus struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:100;not null"`
	TotalSeats int    `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (v1TypeBus) TableName() string { return "type_buses" }

type v1Bus struct {
	ID           uint         `gorm:"primaryKey"`
	BusCompanyID uint         `gorm:"not null;index"`
	BusCompany   v1BusCompany `gorm:"constraint:OnDelete:CASCADE"`
	TypeBusID    uint         `gorm:"not null;index"`
	TypeBus      v1TypeBus    `gorm:"constraint:OnDelete:NO ACTION"`
	LicensePlate string       `gorm:"size:20;not null"`
	IsActive     bool         `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (v1Bus) TableName() string { return "buses" }

type v1BusRoute struct {
	ID              uint         `gorm:"primaryKey"`
	BusCompanyID    uint         `gorm:"not null;index"`
	BusCompany      v1BusCompany `gorm:"constraint:OnDelete:CASCADE"`
	FromCityID      uint         `gorm:"not null;index:idx_bus_routes_cities"`
	FromCity        v1City       `gorm:"foreignKey:FromCityID;constraint:OnDelete:RESTRICT"`
	ToCityID        uint         `gorm:"not null;index:idx_bus_routes_cities"`
	ToCity          v1City       `gorm:"foreignKey:ToCityID;constraint:OnDelete:RESTRICT"`
	Distance        int
	DurationMinutes int
	BasePrice       int64
	IsActive        bool `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (v1BusRoute) TableName() string { return "bus_routes" }

type v1Trip struct {
	ID             uint       `gorm:"primaryKey"`
	BusRouteID     uint       `gorm:"not null;index"`
	BusRoute       v1BusRoute `gorm:"constraint:OnDelete:CASCADE"`
	BusID          uint       `gorm:"not null;index"`
	Bus            v1Bus      `gorm:"constraint:OnDelete:CASCADE"`
	DepartureTime  time.Time  `gorm:"not null;index"`
	ArrivalTime    time.Time  `gorm:"not null"`
	Price          int64      `gorm:"not null"`
	Status         string     `gorm:"size:16;not null;default:scheduled"`
	TotalSeats     int        `gorm:"not null"`
	AvailableSeats int        `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (v1Trip) TableName() string { return "trips" }

// v1Point is the legacy point shape that still carries its trip and time.
type v1Point struct {
	ID           uint   `gorm:"primaryKey"`
	TripID       *uint  `gorm:"column:trip_id"`
	LocationName string `gorm:"size:255;not null"`
	Type         string `gorm:"size:16;not null"`
	Time         *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (v1Point) TableName() string { return "points" }

type v1Coupon struct {
	ID               uint          `gorm:"primaryKey"`
	Code             string        `gorm:"size:50;uniqueIndex;not null"`
	Description      string        `gorm:"size:255"`
	DiscountType     string        `gorm:"size:16;not null"`
	DiscountValue    int64         `gorm:"not null"`
	MaxDiscountValue int64         `gorm:"not null;default:0"`
	MaxUses          int           `gorm:"not null"`
	UsedCount        int           `gorm:"not null;default:0"`
	ValidFrom        time.Time     `gorm:"not null"`
	ValidTo          time.Time     `gorm:"not null"`
	Status           string        `gorm:"size:16;not null;default:active"`
	BusCompanyID     *uint         `gorm:"index"`
	BusCompany       *v1BusCompany `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (v1Coupon) TableName() string { return "coupons" }

type v1Order struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:32;uniqueIndex;not null"`
	UserID    uint      `gorm:"not null;index"`
	User      v1User    `gorm:"constraint:OnDelete:CASCADE"`
	TripID    uint      `gorm:"not null;index"`
	Trip      v1Trip    `gorm:"constraint:OnDelete:CASCADE"`
	CouponID  *uint     `gorm:"index"`
	Coupon    *v1Coupon `gorm:"constraint:OnDelete:SET NULL"`
	Subtotal  int64     `gorm:"not null"`
	Discount  int64     `gorm:"not null;default:0"`
	Total     int64     `gorm:"not null"`
	Status    string    `gorm:"size:16;not null;default:pending"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (v1Order) TableName() string { return "orders" }

type v1Ticket struct {
	ID             uint    `gorm:"primaryKey"`
	OrderID        uint    `gorm:"not null;index"`
	Order          v1Order `gorm:"constraint:OnDelete:CASCADE"`
	TripID         uint    `gorm:"not null;index:idx_tickets_trip_seat"`
	Trip           v1Trip  `gorm:"constraint:OnDelete:CASCADE"`
	UserID         uint    `gorm:"not null;index"`
	User           v1User  `gorm:"constraint:OnDelete:CASCADE"`
	SeatNumber     int     `gorm:"not null;index:idx_tickets_trip_seat"`
	PassengerName  string  `gorm:"size:100;not null"`
	PassengerPhone string  `gorm:"size:20;not null"`
	PickupPointID  *uint
	DropoffPointID *uint
	Price          int64  `gorm:"not null"`
	Status         string `gorm:"size:16;not null;default:booked"`
	RefundAmount   int64  `gorm:"not null;default:0"`
	CancelledAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (v1Ticket) TableName() string { return "tickets" }

type v1Review struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"`
	User        v1User `gorm:"constraint:OnDelete:CASCADE"`
	TripID      uint   `gorm:"not null;index"`
	Trip        v1Trip `gorm:"constraint:OnDelete:CASCADE"`
	Rating      int    `gorm:"not null"`
	CommentText string `gorm:"type:text"`
	IsVisible   bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (v1Review) TableName() string { return "reviews" }

type v1Staff struct {
	ID           uint         `gorm:"primaryKey"`
	BusCompanyID uint         `gorm:"not null;index"`
	BusCompany   v1BusCompany `gorm:"constraint:OnDelete:CASCADE"`
	FullName     string       `gorm:"size:100;not null"`
	Phone        string       `gorm:"size:20"`
	Email        string       `gorm:"size:191"`
	Position     string       `gorm:"size:50"`
	IsActive     bool         `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (v1Staff) TableName() string { return "staff" }

func v1Tables() []any {
	return []any{
		&v1Role{}, &v1User{}, &v1City{}, &v1Location{}, &v1BusCompany{},
		&v1TypeBus{}, &v1Bus{}, &v1BusRoute{}, &v1Trip{}, &v1Point{},
		&v1Coupon{}, &v1Order{}, &v1Ticket{}, &v1Review{}, &v1Staff{},
	}
}

func init() {
	Register(&Migration{
		Version: "202401010001",
		Name:    "create_core_tables",
		Up: func(tx *gorm.DB) error {
			for _, t := range v1Tables() {
				if err := tx.Migrator().CreateTable(t); err != nil {
					return err
				}
			}
			roles := []v1Role{{Name: "user"}, {Name: "company"}, {Name: "admin"}}
			return tx.Create(&roles).Error
		},
		Down: func(tx *gorm.DB) error {
			tables := v1Tables()
			for i := len(tables) - 1; i >= 0; i-- {
				if err := tx.Migrator().DropTable(tables[i]); err != nil {
					return err
				}
			}
			return nil
		},
	})
}
