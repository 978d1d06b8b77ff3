package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/klimenko666/dptmptch/internal/app"
	"github.com/klimenko666/dptmptch/internal/common"
	"github.com/klimenko666/dptmptch/internal/domain/vacancy"
	"github.com/klimenko666/dptmptch/internal/http/middleware"
	"github.com/klimenko666/dptmptch/internal/http/response"
)

type VacancyHandler struct {
	vacancies *app.VacancyService
}

func NewVacancyHandler(vacancies *app.VacancyService) *VacancyHandler {
	return &VacancyHandler{vacancies: vacancies}
}

type vacancyRequest struct {
	Subject       string   `json:"subject"`
	WorkType      string   `json:"work_type"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	ScheduleFrom  string   `json:"schedule_from"`
	ScheduleTo    string   `json:"schedule_to"`
	WorkDays      []string `json:"work_days"`
	SalaryAmount  int      `json:"salary_amount"`
	SalaryType    string   `json:"salary_type"`
	Address       string   `json:"address"`
	Description   string   `json:"description"`
	ContactPhone  string   `json:"contact_phone"`
	ContactEmail  string   `json:"contact_email"`
	ContactPerson string   `json:"contact_person"`
}

type vacancyStatusRequest struct {
	Status string `json:"status"`
}

func (req vacancyRequest) toDomain() (vacancy.Vacancy, error) {
	v := vacancy.Vacancy{
		Subject:       req.Subject,
		WorkType:      vacancy.WorkType(req.WorkType),
		ScheduleFrom:  req.ScheduleFrom,
		ScheduleTo:    req.ScheduleTo,
		WorkDays:      req.WorkDays,
		SalaryAmount:  req.SalaryAmount,
		SalaryType:    vacancy.SalaryType(req.SalaryType),
		Address:       req.Address,
		Description:   req.Description,
		ContactPhone:  req.ContactPhone,
		ContactEmail:  req.ContactEmail,
		ContactPerson: req.ContactPerson,
	}
	if req.StartDate != "" {
		parsed, err := common.ParseDate(req.StartDate)
		if err != nil {
			return v, common.NewValidationError("invalid start date", map[string]string{"start_date": err.Error()})
		}
		v.StartDate = parsed
	}
	if req.EndDate != "" {
		parsed, err := common.ParseDate(req.EndDate)
		if err != nil {
			return v, common.NewValidationError("invalid end date", map[string]string{"end_date": err.Error()})
		}
		v.EndDate = parsed
	}
	return v, nil
}

func (h *VacancyHandler) Create(w http.ResponseWriter, r *http.Request) {
	employerID, ok := middleware.EmployerIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req vacancyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	payload, err := req.toDomain()
	if err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.vacancies.Create(r.Context(), employerID, payload)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *VacancyHandler) Update(w http.ResponseWriter, r *http.Request) {
	employerID, ok := middleware.EmployerIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	vacancyID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req vacancyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	payload, err := req.toDomain()
	if err != nil {
		response.Error(w, err)
		return
	}
	payload.ID = vacancyID
	updated, err := h.vacancies.Update(r.Context(), employerID, payload)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *VacancyHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	employerID, ok := middleware.EmployerIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	vacancyID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req vacancyStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		response.Error(w, common.NewError(common.CodeValidation, "status is required", nil))
		return
	}
	updated, err := h.vacancies.UpdateStatus(r.Context(), employerID, vacancyID, vacancy.Status(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *VacancyHandler) Archive(w http.ResponseWriter, r *http.Request) {
	employerID, ok := middleware.EmployerIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	vacancyID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.vacancies.Archive(r.Context(), employerID, vacancyID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *VacancyHandler) Restore(w http.ResponseWriter, r *http.Request) {
	employerID, ok := middleware.EmployerIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	vacancyID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.vacancies.Restore(r.Context(), employerID, vacancyID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *VacancyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	employerID, ok := middleware.EmployerIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	vacancyID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.vacancies.Delete(r.Context(), employerID, vacancyID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "vacancy deleted"})
}

// ListPublic applies the optional filter set. Malformed filter values
// are treated as absent rather than rejected, so a bad query string can
// never break the public listing.
func (h *VacancyHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := vacancy.Filter{Subject: strings.TrimSpace(query.Get("subject"))}
	if value := query.Get("start_date"); value != "" {
		if parsed, err := common.ParseDate(value); err == nil {
			filter.StartDate = parsed
		}
	}
	if value := query.Get("end_date"); value != "" {
		if parsed, err := common.ParseDate(value); err == nil {
			filter.EndDate = parsed
		}
	}
	if value := query.Get("min_salary"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			filter.MinSalary = parsed
		}
	}
	items, err := h.vacancies.ListPublic(r.Context(), filter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *VacancyHandler) Get(w http.ResponseWriter, r *http.Request) {
	vacancyID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.vacancies.Get(r.Context(), vacancyID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *VacancyHandler) ListByEmployer(w http.ResponseWriter, r *http.Request) {
	employerID, ok := middleware.EmployerIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.vacancies.ListByEmployer(r.Context(), employerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *VacancyHandler) ListArchived(w http.ResponseWriter, r *http.Request) {
	employerID, ok := middleware.EmployerIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.vacancies.ListArchived(r.Context(), employerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
