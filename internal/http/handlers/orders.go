package handlers

import (
	"net/http"

	"busbooking/internal/domain"
	"busbooking/internal/http/middleware"
	"busbooking/internal/repositories"
	"busbooking/internal/services"
	"busbooking/internal/validation"

	"github.com/gin-gonic/gin"
)

// POST /api/orders/checkout
func (h *Handler) Checkout(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	var req validation.Checkout
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := services.CheckoutService{DB: h.DB, Now: h.Now, RequestID: middleware.GetRequestID(c)}
	order, err := svc.Checkout(c.Request.Context(), rc.UserID, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Đặt vé thành công", order)
}

// GET /api/orders/mine
func (h *Handler) MyOrders(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	var f domain.ListFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", "Tham số lọc không hợp lệ", err.Error())
		return
	}
	page, err := repositories.OrderRepository{DB: h.DB}.ListByUser(c.Request.Context(), rc.UserID, f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondPage(c, "Lấy danh sách đơn hàng thành công", page)
}

// POST /api/coupons/validate
func (h *Handler) ValidateCoupon(c *gin.Context) {
	var req validation.CouponCheck
	if !BindJSONOrError(c, &req) {
		return
	}
	quote, err := services.CouponService{DB: h.DB, Now: h.Now}.Validate(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Áp dụng mã giảm giá thành công", quote)
}
