package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/http/middleware"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxBodyBytes = 1 << 20

// Handler carries what request handlers need to build services.
type Handler struct {
	DB     *gorm.DB
	Tokens *services.TokenManager
	// Location is the zone calendar dates are read in.
	Location *time.Location
	Now      func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// BindJSONOrError decodes the body into dst, answering 400 on failure.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "bad_request", "Dữ liệu gửi lên trống", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", "Dữ liệu gửi lên không hợp lệ", err.Error())
		return false
	}
	return true
}

// rawObject reads the body and checks it is one JSON object.
func rawObject(c *gin.Context) ([]byte, bool) {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "bad_request", "Dữ liệu gửi lên trống", nil)
		return nil, false
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", "Không đọc được dữ liệu gửi lên", nil)
		return nil, false
	}
	raw = bytes.TrimSpace(raw)
	var probe map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &probe) != nil || probe == nil {
		RespondError(c, http.StatusBadRequest, "bad_request", "Dữ liệu gửi lên phải là một đối tượng JSON", nil)
		return nil, false
	}
	return raw, true
}

func parseID(c *gin.Context) (domain.ID, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		RespondError(c, http.StatusBadRequest, "bad_request", "Mã định danh không hợp lệ", nil)
		return 0, false
	}
	return domain.ID(id), true
}

func currentUser(c *gin.Context) (domain.RequestContext, bool) {
	rc, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", "Vui lòng đăng nhập để tiếp tục", nil)
	}
	return rc, ok
}
