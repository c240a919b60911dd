package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for /api/routes.
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	respondOK(c, http.StatusOK, "Máy chủ đang hoạt động", gin.H{"status": "ok", "time": time.Now().UTC()})
}

// CheckDB pings the pool and counts users with one raw query.
func CheckDB(ctx context.Context, db *sql.DB) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return 0, err
	}
	var count int64
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// GET /api/db-check
func (h *Handler) DBCheck(c *gin.Context) {
	if h.DB == nil {
		RespondError(c, http.StatusServiceUnavailable, "db_unavailable", "Cơ sở dữ liệu chưa được kết nối", nil)
		return
	}
	sqlDB, err := h.DB.DB()
	if err != nil {
		RespondError(c, http.StatusServiceUnavailable, "db_unavailable", "Cơ sở dữ liệu chưa được kết nối", nil)
		return
	}
	count, err := CheckDB(c.Request.Context(), sqlDB)
	if err != nil {
		RespondError(c, http.StatusServiceUnavailable, "db_unavailable", "Không truy vấn được cơ sở dữ liệu", err.Error())
		return
	}
	respondOK(c, http.StatusOK, "Kết nối cơ sở dữ liệu ổn định", gin.H{"usersInDb": count})
}

// GET /api/routes
func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		RespondError(c, http.StatusServiceUnavailable, "not_ready", "Router chưa sẵn sàng", nil)
		return
	}

	routes := r.Routes()
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
	}
	respondOK(c, http.StatusOK, "Danh sách route", out)
}
