package models

import (
	"time"

	"busbooking/internal/domain"

	"gorm.io/gorm"
)

// BusCompany is the tenant owning routes, buses, trips, coupons and policies.
type BusCompany struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Email     string    `gorm:"size:191" json:"email"`
	Address   string    `gorm:"size:255" json:"address"`
	OwnerID   *uint     `json:"ownerId"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *BusCompany) SetActive(v bool) { c.IsActive = v }

type TypeBus struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	TotalSeats   int       `gorm:"not null" json:"totalSeats"`
	BusCompanyID *uint     `json:"busCompanyId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Bus struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BusCompanyID uint      `gorm:"not null" json:"companyId"`
	TypeBusID    uint      `gorm:"not null" json:"typeBusId"`
	TypeBus      *TypeBus  `gorm:"foreignKey:TypeBusID" json:"typeBus,omitempty"`
	LicensePlate string    `gorm:"size:20;not null" json:"licensePlate"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (b *Bus) SetActive(v bool) { b.IsActive = v }

type BusRoute struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	BusCompanyID    uint        `gorm:"not null" json:"companyId"`
	BusCompany      *BusCompany `gorm:"foreignKey:BusCompanyID" json:"company,omitempty"`
	FromCityID      uint        `gorm:"not null" json:"fromCityId"`
	FromCity        *City       `gorm:"foreignKey:FromCityID" json:"fromCity,omitempty"`
	ToCityID        uint        `gorm:"not null" json:"toCityId"`
	ToCity          *City       `gorm:"foreignKey:ToCityID" json:"toCity,omitempty"`
	Distance        int         `json:"distance"`
	DurationMinutes int         `json:"durationMinutes"`
	BasePrice       int64       `json:"basePrice"`
	IsActive        bool        `gorm:"not null" json:"isActive"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

func (r *BusRoute) SetActive(v bool) { r.IsActive = v }

type Staff struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BusCompanyID uint      `gorm:"not null" json:"companyId"`
	FullName     string    `gorm:"size:100;not null" json:"fullName"`
	Phone        string    `gorm:"size:20" json:"phone"`
	Email        string    `gorm:"size:191" json:"email"`
	Position     string    `gorm:"size:50" json:"position"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Staff) TableName() string { return "staff" }

func (s *Staff) SetActive(v bool) { s.IsActive = v }

type PartnerStatus string

const (
	PartnerProcessed   PartnerStatus = "processed"
	PartnerUnprocessed PartnerStatus = "unprocessed"
)

func (s PartnerStatus) Valid() bool {
	return s == PartnerProcessed || s == PartnerUnprocessed
}

// Partner is a prospective bus company that filled the partnership form.
type Partner struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	FullName  string        `gorm:"size:100;not null" json:"fullName"`
	Company   string        `gorm:"size:150;not null" json:"company"`
	Email     string        `gorm:"size:191;not null" json:"email"`
	Phone     string        `gorm:"size:20;not null" json:"phone"`
	Message   string        `gorm:"type:text" json:"message"`
	Status    PartnerStatus `gorm:"size:16;not null" json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (p *Partner) BeforeSave(*gorm.DB) error {
	if p.Status == "" {
		p.Status = PartnerUnprocessed
	}
	if !p.Status.Valid() {
		return domain.ValidationError{Msg: "trạng thái đối tác không hợp lệ"}
	}
	return nil
}

type PolicyType string

const (
	PolicyCancellation  PolicyType = "CANCELLATION"
	PolicyGeneral       PolicyType = "GENERAL"
	PolicyBaggage       PolicyType = "BAGGAGE"
	PolicyChildPregnant PolicyType = "CHILD_PREGNANT"
)

func (t PolicyType) Valid() bool {
	switch t {
	case PolicyCancellation, PolicyGeneral, PolicyBaggage, PolicyChildPregnant:
		return true
	}
	return false
}

type CompanyPolicy struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	BusCompanyID uint       `gorm:"not null" json:"companyId"`
	PolicyType   PolicyType `gorm:"size:32;not null" json:"policyType"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Content      string     `gorm:"type:text" json:"content"`
	IsActive     bool       `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (p *CompanyPolicy) SetActive(v bool) { p.IsActive = v }

func (p *CompanyPolicy) BeforeSave(*gorm.DB) error {
	if !p.PolicyType.Valid() {
		return domain.ValidationError{Msg: "loại chính sách không hợp lệ"}
	}
	return nil
}

type CancellationRule struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	BusCompanyID        uint      `gorm:"not null" json:"companyId"`
	TimeBeforeDeparture int       `gorm:"not null" json:"timeBeforeDeparture"` // hours
	RefundPercentage    int       `gorm:"not null" json:"refundPercentage"`
	FeeAmount           int64     `gorm:"not null" json:"feeAmount"`
	IsActive            bool      `gorm:"not null" json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func (r *CancellationRule) SetActive(v bool) { r.IsActive = v }

func (r *CancellationRule) BeforeSave(*gorm.DB) error {
	if r.RefundPercentage < 0 || r.RefundPercentage > 100 {
		return domain.ValidationError{Msg: "phần trăm hoàn tiền phải nằm trong khoảng 0-100"}
	}
	if r.TimeBeforeDeparture < 0 || r.FeeAmount < 0 {
		return domain.ValidationError{Msg: "thời gian và phí hủy không được âm"}
	}
	return nil
}
