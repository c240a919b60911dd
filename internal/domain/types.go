package domain

import (
	"fmt"
	"strings"
)

// ID is used across domain entities.
type ID = uint

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListFilter is the query every resource list accepts.
type ListFilter struct {
	IsActive     *bool  `form:"isActive" json:"isActive,omitempty"`
	Search       string `form:"search" json:"search,omitempty"`
	TypeOrCityID string `form:"typeOrCityId" json:"typeOrCityId,omitempty"`
	PageSize     int    `form:"pageSize" json:"pageSize"`
	PageNumber   int    `form:"pageNumber" json:"pageNumber"`
}

// Normalize clamps paging to sane values.
func (f ListFilter) Normalize() ListFilter {
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	if f.PageNumber <= 0 {
		f.PageNumber = 1
	}
	f.Search = strings.TrimSpace(f.Search)
	f.TypeOrCityID = strings.TrimSpace(f.TypeOrCityID)
	return f
}

// Offset is the row offset of the requested page.
func (f ListFilter) Offset() int {
	return (f.PageNumber - 1) * f.PageSize
}

// Page is one page of a list result.
type Page[T any] struct {
	Items       []T   `json:"items"`
	TotalItems  int64 `json:"totalItems"`
	TotalPage   int   `json:"totalPage"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

// NewPage builds a page from items and the unpaged total.
func NewPage[T any](items []T, total int64, f ListFilter) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPage := 0
	if f.PageSize > 0 {
		totalPage = int((total + int64(f.PageSize) - 1) / int64(f.PageSize))
	}
	return Page[T]{
		Items:       items,
		TotalItems:  total,
		TotalPage:   totalPage,
		CurrentPage: f.PageNumber,
		PageSize:    f.PageSize,
	}
}

// Role is the closed set of account roles.
type Role string

const (
	RoleUser    Role = "user"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

// Roles lists every role in seed order.
func Roles() []Role {
	return []Role{RoleUser, RoleCompany, RoleAdmin}
}

// ParseRole maps a stored role name onto the enumeration.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleUser, RoleCompany, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string { return string(r) }

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID   `json:"userId"`
	Role   Role `json:"role"`
}
