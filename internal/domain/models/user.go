package models

import (
	"time"

	"busbooking/internal/domain"
)

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:32;uniqueIndex;not null" json:"name"`
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"size:100;not null" json:"fullName"`
	Email        string    `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"size:20;index" json:"phone"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"` // never sent to clients
	AvatarURL    string    `gorm:"size:512" json:"avatarUrl"`
	RoleID       uint      `gorm:"not null" json:"roleId"`
	Role         *Role     `gorm:"foreignKey:RoleID" json:"roles,omitempty"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) SetActive(v bool) { u.IsActive = v }

// RoleName resolves the preloaded role, falling back to RoleUser.
func (u *User) RoleName() domain.Role {
	if u.Role == nil {
		return domain.RoleUser
	}
	r, err := domain.ParseRole(u.Role.Name)
	if err != nil {
		return domain.RoleUser
	}
	return r
}

// PublicUser is the profile shape returned by /auth/me.
type PublicUser struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	AvatarURL string    `json:"avatarUrl"`
	Roles     RoleRef   `json:"roles"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RoleRef struct {
	Name domain.Role `json:"name"`
}

func (u *User) ToPublic() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		AvatarURL: u.AvatarURL,
		Roles:     RoleRef{Name: u.RoleName()},
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
