package handlers

import (
	"net/http"

	"busbooking/internal/repositories"
	"busbooking/internal/services"
	"busbooking/internal/validation"

	"github.com/gin-gonic/gin"
)

func (h *Handler) tripService() services.TripService {
	return services.TripService{Trips: repositories.TripRepository{DB: h.DB}, Location: h.Location}
}

// POST /api/trips/search
func (h *Handler) SearchTrips(c *gin.Context) {
	var req validation.TripSearch
	if !BindJSONOrError(c, &req) {
		return
	}
	page, err := h.tripService().Search(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondPage(c, "Tìm chuyến xe thành công", page)
}

// GET /api/trips/:id
func (h *Handler) TripDetail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	trip, err := h.tripService().Detail(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Lấy chi tiết chuyến xe thành công", trip)
}

// GET /api/trips/seats/:id
func (h *Handler) TripSeats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	seats, err := h.tripService().SeatMap(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Lấy sơ đồ ghế thành công", seats)
}
