package models

import (
	"time"

	"busbooking/internal/domain"

	"gorm.io/gorm"
)

type City struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *City) SetActive(v bool) { c.IsActive = v }

type Location struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CityID    uint      `gorm:"not null;index" json:"cityId"`
	City      *City     `gorm:"foreignKey:CityID" json:"city,omitempty"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (l *Location) SetActive(v bool) { l.IsActive = v }

type PointType string

const (
	PointPickup  PointType = "pickup"
	PointDropoff PointType = "dropoff"
)

func (t PointType) Valid() bool {
	return t == PointPickup || t == PointDropoff
}

// Point is a pickup or dropoff place. Its trip and time live on TripPoint.
type Point struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	LocationName string    `gorm:"size:255;not null" json:"locationName"`
	Type         PointType `gorm:"size:16;not null" json:"type"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (p *Point) SetActive(v bool) { p.IsActive = v }

func (p *Point) BeforeSave(*gorm.DB) error {
	if !p.Type.Valid() {
		return domain.ValidationError{Field: "type", Msg: "loại điểm phải là pickup hoặc dropoff"}
	}
	return nil
}

type TripPoint struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TripID    uint      `gorm:"not null" json:"tripId"`
	PointID   uint      `gorm:"not null" json:"pointId"`
	Point     *Point    `gorm:"foreignKey:PointID" json:"point,omitempty"`
	Time      time.Time `gorm:"not null" json:"time"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *TripPoint) SetActive(v bool) { p.IsActive = v }
