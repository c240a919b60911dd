package migrations

import (
	"time"

	"gorm.io/gorm"
)

// v7TripPoint moves the trip and time of a point onto a join table so one
// point can serve many trips.
type v7TripPoint struct {
	ID        uint      `gorm:"primaryKey"`
	TripID    uint      `gorm:"not null;uniqueIndex:uq_trip_points_trip_point_time;index"`
	Trip      v1Trip    `gorm:"constraint:OnDelete:CASCADE"`
	PointID   uint      `gorm:"not null;uniqueIndex:uq_trip_points_trip_point_time;index"`
	Point     v7Point   `gorm:"constraint:OnDelete:CASCADE"`
	Time      time.Time `gorm:"not null;uniqueIndex:uq_trip_points_trip_point_time"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (v7TripPoint) TableName() string { return "trip_points" }

type v7Point struct {
	ID           uint   `gorm:"primaryKey"`
	LocationName string `gorm:"size:255;not null"`
	Type         string `gorm:"size:16;not null"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (v7Point) TableName() string { return "points" }

// v7LegacyPointColumns names the columns removed from points.
type v7LegacyPointColumns struct {
	TripID *uint      `gorm:"column:trip_id"`
	Time   *time.Time `gorm:"column:time"`
}

func (v7LegacyPointColumns) TableName() string { return "points" }

type v7LegacyPointRow struct {
	ID     uint
	TripID *uint
	Time   *time.Time
}

func init() {
	Register(&Migration{
		Version: "202404010001",
		Name:    "create_trip_points",
		Up: func(tx *gorm.DB) error {
			var legacy []v7LegacyPointRow
			if err := tx.Table("points").
				Select("id, trip_id, time").
				Where("trip_id IS NOT NULL AND time IS NOT NULL").
				Find(&legacy).Error; err != nil {
				return err
			}

			// points must lose its columns before anything references it:
			// sqlite rebuilds the table to drop a column.
			for _, col := range []string{"TripID", "Time"} {
				if err := tx.Migrator().DropColumn(&v7LegacyPointColumns{}, col); err != nil {
					return err
				}
			}

			if err := tx.Migrator().CreateTable(&v7TripPoint{}); err != nil {
				return err
			}
			if len(legacy) == 0 {
				return nil
			}
			now := time.Now().UTC()
			rows := make([]v7TripPoint, 0, len(legacy))
			for _, p := range legacy {
				rows = append(rows, v7TripPoint{
					TripID:    *p.TripID,
					PointID:   p.ID,
					Time:      p.Time.UTC(),
					IsActive:  true,
					CreatedAt: now,
					UpdatedAt: now,
				})
			}
			return tx.Omit("Trip", "Point").Create(&rows).Error
		},
		Down: func(tx *gorm.DB) error {
			for _, col := range []string{"TripID", "Time"} {
				if err := tx.Migrator().AddColumn(&v7LegacyPointColumns{}, col); err != nil {
					return err
				}
			}

			var links []v7TripPoint
			if err := tx.Order("point_id, time, id").Find(&links).Error; err != nil {
				return err
			}
			seen := map[uint]bool{}
			for _, l := range links {
				if seen[l.PointID] {
					continue
				}
				seen[l.PointID] = true
				if err := tx.Table("points").Where("id = ?", l.PointID).
					Updates(map[string]any{"trip_id": l.TripID, "time": l.Time}).Error; err != nil {
					return err
				}
			}
			return tx.Migrator().DropTable(&v7TripPoint{})
		},
	})
}
