package migrations

import (
	"time"

	"gorm.io/gorm"
)

type v3CompanyPolicy struct {
	ID           uint         `gorm:"primaryKey"`
	BusCompanyID uint         `gorm:"not null;index:idx_company_policies_company_type"`
	BusCompany   v1BusCompany `gorm:"constraint:OnDelete:CASCADE"`
	PolicyType   string       `gorm:"size:32;not null;index:idx_company_policies_company_type"`
	Title        string       `gorm:"size:255;not null"`
	Content      string       `gorm:"type:text"`
	IsActive     bool         `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (v3CompanyPolicy) TableName() string { return "company_policies" }

func init() {
	Register(&Migration{
		Version: "202402010001",
		Name:    "create_company_policies",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&v3CompanyPolicy{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&v3CompanyPolicy{})
		},
	})
}
