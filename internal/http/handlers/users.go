package handlers

import (
	"net/http"

	"busbooking/internal/validation"

	"github.com/gin-gonic/gin"
)

// POST /api/users creates an account with a chosen role. The generic
// resource create cannot be used because it never sees a password.
func (h *Handler) CreateUser(c *gin.Context) {
	var req validation.AdminCreateUser
	if !BindJSONOrError(c, &req) {
		return
	}
	u, err := h.authService(c).CreateUser(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Tạo tài khoản thành công", u.ToPublic())
}
