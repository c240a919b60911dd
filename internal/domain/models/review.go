package models

import (
	"time"

	"busbooking/internal/domain"

	"gorm.io/gorm"
)

type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null" json:"userId"`
	User         *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TripID       uint      `gorm:"not null" json:"tripId"`
	BusCompanyID *uint     `json:"companyId"`
	Rating       int       `gorm:"not null" json:"rating"`
	CommentText  string    `gorm:"type:text" json:"commentText"`
	IsVisible    bool      `gorm:"not null" json:"isVisible"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SetActive maps the generic active flag onto visibility.
func (r *Review) SetActive(v bool) { r.IsVisible = v }

func (r *Review) BeforeSave(*gorm.DB) error {
	if r.Rating < 1 || r.Rating > 5 {
		return domain.ValidationError{Field: "rating", Msg: "đánh giá phải từ 1 đến 5 sao"}
	}
	return nil
}
