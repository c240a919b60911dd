package migrations

import (
	"time"

	"gorm.io/gorm"
)

type v2Partner struct {
	ID        uint   `gorm:"primaryKey"`
	FullName  string `gorm:"size:100;not null"`
	Company   string `gorm:"size:150;not null"`
	Email     string `gorm:"size:191;not null;uniqueIndex"`
	Phone     string `gorm:"size:20;not null;uniqueIndex"`
	Message   string `gorm:"type:text"`
	Status    string `gorm:"size:16;not null;default:unprocessed"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (v2Partner) TableName() string { return "partners" }

func init() {
	Register(&Migration{
		Version: "202401150001",
		Name:    "create_partners",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&v2Partner{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&v2Partner{})
		},
	})
}
