package handlers

import (
	"net/http"

	"busbooking/internal/http/middleware"
	"busbooking/internal/services"
	"busbooking/internal/validation"

	"github.com/gin-gonic/gin"
)

// POST /api/reviews
func (h *Handler) CreateReview(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	var req validation.Review
	if !BindJSONOrError(c, &req) {
		return
	}
	review, err := services.ReviewService{DB: h.DB, RequestID: middleware.GetRequestID(c)}.Submit(c.Request.Context(), rc.UserID, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Gửi đánh giá thành công", review)
}
