package handlers

import (
	"net/http"

	"busbooking/internal/http/middleware"
	"busbooking/internal/repositories"
	"busbooking/internal/services"
	"busbooking/internal/validation"

	"github.com/gin-gonic/gin"
)

func (h *Handler) authService(c *gin.Context) services.AuthService {
	return services.AuthService{
		Users:     repositories.UserRepository{DB: h.DB},
		Tokens:    h.Tokens,
		RequestID: middleware.GetRequestID(c),
	}
}

// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req validation.SignUp
	if !BindJSONOrError(c, &req) {
		return
	}
	u, err := h.authService(c).Register(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Đăng ký thành công", u.ToPublic())
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req validation.SignIn
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.authService(c).Login(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Đăng nhập thành công", res)
}

// GET /api/auth/me
func (h *Handler) Me(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	u, err := h.authService(c).Me(c.Request.Context(), rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Lấy thông tin tài khoản thành công", u.ToPublic())
}

// PATCH /api/auth/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	var req validation.UpdateProfile
	if !BindJSONOrError(c, &req) {
		return
	}
	u, err := h.authService(c).UpdateProfile(c.Request.Context(), rc.UserID, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cập nhật thông tin thành công", u.ToPublic())
}

// PATCH /api/auth/profile/avatar
func (h *Handler) UpdateAvatar(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	var req validation.UpdateAvatar
	if !BindJSONOrError(c, &req) {
		return
	}
	u, err := h.authService(c).UpdateAvatar(c.Request.Context(), rc.UserID, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cập nhật ảnh đại diện thành công", u.ToPublic())
}

// PATCH /api/auth/profile/password
func (h *Handler) ChangePassword(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	var req validation.ChangePassword
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.authService(c).ChangePassword(c.Request.Context(), rc.UserID, req); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Đổi mật khẩu thành công", nil)
}
