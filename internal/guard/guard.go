// Package guard decides who may enter the company area.
package guard

import (
	"net/url"
	"strings"

	"busbooking/internal/domain"
)

type Kind int

const (
	Render Kind = iota
	Redirect
)

func (k Kind) String() string {
	if k == Redirect {
		return "redirect"
	}
	return "render"
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// Notice is the toast shown alongside a redirect.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

type Decision struct {
	Kind     Kind    `json:"kind"`
	Location string  `json:"location,omitempty"`
	Notice   *Notice `json:"notice,omitempty"`
}

// Session is what the guard knows about the visitor.
type Session struct {
	Authenticated bool
	Role          domain.Role
}

const (
	SignInPath = "/sign"
	AdminPath  = "/admin"
	HomePath   = "/"

	MsgSignInRequired  = "Vui lòng đăng nhập để tiếp tục"
	MsgAdminNotAllowed = "Tài khoản quản trị không thể truy cập khu vực nhà xe"
	MsgCompanyOnly     = "Bạn không có quyền truy cập khu vực nhà xe"
)

// CompanyArea is the access decision for a page under the company area.
func CompanyArea(s Session, currentPath string) Decision {
	if !s.Authenticated {
		return Decision{
			Kind:     Redirect,
			Location: SignInPath + "?type=signin&returnUrl=" + EncodeURIComponent(currentPath),
			Notice:   &Notice{Level: NoticeInfo, Message: MsgSignInRequired},
		}
	}
	switch s.Role {
	case domain.RoleCompany:
		return Decision{Kind: Render}
	case domain.RoleAdmin:
		return Decision{
			Kind:     Redirect,
			Location: AdminPath,
			Notice:   &Notice{Level: NoticeError, Message: MsgAdminNotAllowed},
		}
	case domain.RoleUser:
		return redirectHome()
	default:
		return redirectHome()
	}
}

func redirectHome() Decision {
	return Decision{
		Kind:     Redirect,
		Location: HomePath,
		Notice:   &Notice{Level: NoticeError, Message: MsgCompanyOnly},
	}
}

var uriComponentFixups = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes s the way browsers do for one URI component.
func EncodeURIComponent(s string) string {
	return uriComponentFixups.Replace(url.QueryEscape(s))
}
