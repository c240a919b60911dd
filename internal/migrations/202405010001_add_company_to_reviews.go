package migrations

import (
	"gorm.io/gorm"
)

type v9Review struct {
	BusCompanyID *uint        `gorm:"index:idx_reviews_bus_company_id"`
	BusCompany   v1BusCompany `gorm:"constraint:OnDelete:CASCADE"`
}

func (v9Review) TableName() string { return "reviews" }

func init() {
	Register(&Migration{
		Version: "202405010001",
		Name:    "add_company_to_reviews",
		Up: func(tx *gorm.DB) error {
			return addCascadeColumn(tx, &v9Review{}, "reviews", "BusCompanyID", "BusCompany", "bus_company_id", "bus_companies")
		},
		Down: func(tx *gorm.DB) error {
			return dropCascadeColumn(tx, &v9Review{}, "BusCompanyID", "BusCompany", "idx_reviews_bus_company_id")
		},
	})
}
