package handlers

import (
	"net/http"

	"busbooking/internal/repositories"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) homeService() services.HomeService {
	return services.HomeService{Home: repositories.HomeRepository{DB: h.DB}, Now: h.Now}
}

// GET /api/home/featured-routes
func (h *Handler) FeaturedRoutes(c *gin.Context) {
	routes, err := h.homeService().FeaturedRoutes(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Lấy tuyến xe nổi bật thành công", routes)
}

// GET /api/home/active-coupons
func (h *Handler) ActiveCoupons(c *gin.Context) {
	coupons, err := h.homeService().ActiveCoupons(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Lấy mã giảm giá thành công", coupons)
}

// GET /api/home/featured-reviews
func (h *Handler) FeaturedReviews(c *gin.Context) {
	reviews, err := h.homeService().FeaturedReviews(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Lấy đánh giá nổi bật thành công", reviews)
}
