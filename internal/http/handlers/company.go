package handlers

import (
	"net/http"

	"busbooking/internal/repositories"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) companyService() services.CompanyService {
	return services.CompanyService{Companies: repositories.CompanyRepository{DB: h.DB}}
}

// GET /api/company/profile
func (h *Handler) CompanyProfile(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	company, err := h.companyService().Profile(c.Request.Context(), rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Lấy thông tin nhà xe thành công", company)
}

// GET /api/company/policies
func (h *Handler) CompanyPolicies(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	policies, err := h.companyService().Policies(c.Request.Context(), rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Lấy chính sách thành công", policies)
}

// GET /api/company/cancellation-rules
func (h *Handler) CompanyCancellationRules(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	rules, err := h.companyService().CancellationRules(c.Request.Context(), rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Lấy quy định hủy vé thành công", rules)
}
