package migrations

import (
	"time"

	"gorm.io/gorm"
)

type v4CancellationRule struct {
	ID                  uint         `gorm:"primaryKey"`
	BusCompanyID        uint         `gorm:"not null;index"`
	BusCompany          v1BusCompany `gorm:"constraint:OnDelete:CASCADE"`
	TimeBeforeDeparture int          `gorm:"not null"`
	RefundPercentage    int          `gorm:"not null;check:chk_cancellation_rules_refund,refund_percentage >= 0 AND refund_percentage <= 100"`
	FeeAmount           int64        `gorm:"not null;default:0"`
	IsActive            bool         `gorm:"not null;default:true"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (v4CancellationRule) TableName() string { return "cancellation_rules" }

func init() {
	Register(&Migration{
		Version: "202402010002",
		Name:    "create_cancellation_rules",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&v4CancellationRule{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&v4CancellationRule{})
		},
	})
}
