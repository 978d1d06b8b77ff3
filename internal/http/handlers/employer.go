package handlers

import (
	"net/http"

	"github.com/klimenko666/dptmptch/internal/app"
	"github.com/klimenko666/dptmptch/internal/http/middleware"
	"github.com/klimenko666/dptmptch/internal/http/response"
)

type EmployerHandler struct {
	employers *app.EmployerService
}

func NewEmployerHandler(employers *app.EmployerService) *EmployerHandler {
	return &EmployerHandler{employers: employers}
}

type profileRequest struct {
	OrganizationName string `json:"organization_name"`
	ContactName      string `json:"contact_name"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	City             string `json:"city"`
	Address          string `json:"address"`
	Description      string `json:"description"`
}

func (h *EmployerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	employerID, ok := middleware.EmployerIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	profile, err := h.employers.Get(r.Context(), employerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, profile)
}

func (h *EmployerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	employerID, ok := middleware.EmployerIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.employers.UpdateProfile(r.Context(), employerID, app.ProfileInput{
		OrganizationName: req.OrganizationName,
		ContactName:      req.ContactName,
		Phone:            req.Phone,
		Email:            req.Email,
		City:             req.City,
		Address:          req.Address,
		Description:      req.Description,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

// CompanyByVacancy is the public organization page behind a posting.
func (h *EmployerHandler) CompanyByVacancy(w http.ResponseWriter, r *http.Request) {
	vacancyID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	company, err := h.employers.GetByVacancy(r.Context(), vacancyID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, company)
}
