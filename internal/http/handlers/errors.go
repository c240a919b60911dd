package handlers

import (
	"net/http"

	"busbooking/internal/domain"
	"busbooking/internal/http/middleware"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

// Pagination repeats the page metadata of a list response.
type Pagination struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPage   int   `json:"totalPage"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

// Envelope is the body of every JSON response.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Code       string      `json:"code,omitempty"`
	Details    any         `json:"details,omitempty"`
	RequestID  string      `json:"request_id,omitempty"`
}

func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

func respondPage[T any](c *gin.Context, message string, page domain.Page[T]) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    page,
		Pagination: &Pagination{
			TotalItems:  page.TotalItems,
			TotalPage:   page.TotalPage,
			CurrentPage: page.CurrentPage,
			PageSize:    page.PageSize,
		},
	})
}

// RespondError sends the failure envelope with request_id included.
func RespondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, Envelope{
		Success:   false,
		Message:   message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		var details any
		if fields := domain.ValidationFields(err); len(fields) > 0 {
			details = fields
		}
		RespondError(c, http.StatusBadRequest, "validation_error", err.Error(), details)
	case domain.IsUnauthorized(err):
		RespondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsForbidden(err):
		RespondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		utils.LogError(middleware.GetRequestID(c), "http", c.Request.Method+" "+c.FullPath(), err)
		RespondError(c, http.StatusInternalServerError, "internal_error", "Đã có lỗi xảy ra, vui lòng thử lại sau", nil)
	}
}
