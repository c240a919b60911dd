package middleware

import (
	"net/http"
	"strings"

	"busbooking/internal/domain"
	"busbooking/internal/guard"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "userId"
	userRoleKey = "userRole"
)

func bearerToken(c *gin.Context) (string, bool) {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(h[7:])
	return token, token != ""
}

func setUser(c *gin.Context, claims *services.Claims) {
	c.Set(userIDKey, claims.UserID)
	c.Set(userRoleKey, string(claims.Role))
}

// Auth requires a valid bearer access token.
func Auth(tokens *services.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "unauthorized", "Vui lòng đăng nhập để tiếp tục", nil)
			return
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			abort(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
			return
		}
		setUser(c, claims)
		c.Next()
	}
}

// OptionalAuth reads the token when one is sent and ignores it otherwise.
func OptionalAuth(tokens *services.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			if claims, err := tokens.Parse(raw); err == nil {
				setUser(c, claims)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated caller set by Auth.
func CurrentUser(c *gin.Context) (domain.RequestContext, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	id, ok := v.(domain.ID)
	if !ok {
		return domain.RequestContext{}, false
	}
	return domain.RequestContext{UserID: id, Role: domain.Role(c.GetString(userRoleKey))}, true
}

// RequireRoles only lets through callers whose role is in allowed.
// It must run after Auth.
func RequireRoles(allowed ...domain.Role) gin.HandlerFunc {
	set := make(map[domain.Role]struct{}, len(allowed))
	for _, r := range allowed {
		set[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role := c.GetString(userRoleKey)
		if role == "" {
			abort(c, http.StatusUnauthorized, "unauthorized", "Vui lòng đăng nhập để tiếp tục", nil)
			return
		}
		if _, ok := set[domain.Role(role)]; !ok {
			abort(c, http.StatusForbidden, "forbidden", "Bạn không có quyền thực hiện thao tác này", nil)
			return
		}
		c.Next()
	}
}

// CompanyArea applies the company-area guard to API calls: a visitor the
// guard would send to sign in gets 401, any other redirect is a 403. The
// decision is returned in details so clients can follow it.
func CompanyArea() gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, ok := CurrentUser(c)
		d := guard.CompanyArea(guard.Session{Authenticated: ok, Role: rc.Role}, c.Request.URL.Path)
		if d.Kind == guard.Render {
			c.Next()
			return
		}
		status, code := http.StatusForbidden, "forbidden"
		if !ok {
			status, code = http.StatusUnauthorized, "unauthorized"
		}
		abort(c, status, code, d.Notice.Message, d)
	}
}
