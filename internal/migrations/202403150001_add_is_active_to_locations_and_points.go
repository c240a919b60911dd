package migrations

import (
	"gorm.io/gorm"
)

type v6Location struct {
	IsActive bool `gorm:"not null;default:true"`
}

func (v6Location) TableName() string { return "locations" }

type v6Point struct {
	IsActive bool `gorm:"not null;default:true"`
}

func (v6Point) TableName() string { return "points" }

func init() {
	Register(&Migration{
		Version: "202403150001",
		Name:    "add_is_active_to_locations_and_points",
		Up: func(tx *gorm.DB) error {
			for _, t := range []any{&v6Location{}, &v6Point{}} {
				if tx.Migrator().HasColumn(t, "IsActive") {
					continue
				}
				if err := tx.Migrator().AddColumn(t, "IsActive"); err != nil {
					return err
				}
			}
			return nil
		},
		Down: func(tx *gorm.DB) error {
			for _, t := range []any{&v6Location{}, &v6Point{}} {
				if err := tx.Migrator().DropColumn(t, "IsActive"); err != nil {
					return err
				}
			}
			return nil
		},
	})
}
