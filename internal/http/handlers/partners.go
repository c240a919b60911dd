package handlers

import (
	"net/http"
	"strings"

	"busbooking/internal/domain/models"
	"busbooking/internal/http/middleware"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
	"busbooking/internal/validation"

	"github.com/gin-gonic/gin"
)

// POST /api/partners is the public partnership form. Status always starts
// unprocessed whatever the caller sends.
func (h *Handler) RegisterPartner(c *gin.Context) {
	var req validation.PartnerRegistration
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := validation.Check(req); err != nil {
		RespondDomainError(c, err)
		return
	}
	p := &models.Partner{
		FullName: utils.NormalizeSpace(req.FullName),
		Company:  utils.NormalizeSpace(req.Company),
		Email:    utils.NormalizeEmail(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Message:  strings.TrimSpace(req.Message),
		Status:   models.PartnerUnprocessed,
	}
	if err := repositories.NewPartnerRepository(h.DB).Create(c.Request.Context(), p); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "partners", "register", "company="+p.Company)
	respondOK(c, http.StatusCreated, "Gửi đăng ký đối tác thành công", p)
}
