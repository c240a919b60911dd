package handlers

import (
	"fmt"
	"net/http"

	"busbooking/internal/http/middleware"
	"busbooking/internal/repositories"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/tickets/:id/e-ticket
func (h *Handler) TicketPDF(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	svc := services.DocsService{Orders: repositories.OrderRepository{DB: h.DB}, RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.ETicket(c.Request.Context(), rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// POST /api/tickets/:id/cancel
func (h *Handler) CancelTicket(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	svc := services.CancellationService{DB: h.DB, Now: h.Now, RequestID: middleware.GetRequestID(c)}
	ticket, err := svc.Cancel(c.Request.Context(), rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Hủy vé thành công", ticket)
}
