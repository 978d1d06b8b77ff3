package handlers

import (
	"net/http"
	"time"

	"github.com/klimenko666/dptmptch/internal/app"
	"github.com/klimenko666/dptmptch/internal/common"
	"github.com/klimenko666/dptmptch/internal/http/middleware"
	"github.com/klimenko666/dptmptch/internal/http/response"
)

type AuthHandler struct {
	auth       *app.AuthService
	limiter    middleware.Limiter
	sessionTTL time.Duration
}

func NewAuthHandler(auth *app.AuthService, limiter middleware.Limiter, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter, sessionTTL: sessionTTL}
}

type registerRequest struct {
	OrganizationName string `json:"organization_name"`
	ContactName      string `json:"contact_name"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Password         string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !h.allow("register", r) {
		response.Error(w, common.NewError(common.CodeRateLimited, "too many registration attempts", nil))
		return
	}
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.auth.Register(r.Context(), app.RegisterInput{
		OrganizationName: req.OrganizationName,
		ContactName:      req.ContactName,
		Phone:            req.Phone,
		Email:            req.Email,
		Password:         req.Password,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	h.setSessionCookie(w, result.SessionToken)
	response.JSON(w, http.StatusCreated, result.Employer)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.allow("login", r) {
		response.Error(w, common.NewError(common.CodeRateLimited, "too many login attempts", nil))
		return
	}
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}
	h.setSessionCookie(w, result.SessionToken)
	response.JSON(w, http.StatusOK, result.Employer)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		if err := h.auth.Logout(r.Context(), token); err != nil {
			response.Error(w, err)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	response.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	employerID, ok := middleware.EmployerIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	current, err := h.auth.CurrentEmployer(r.Context(), employerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, current)
}

func (h *AuthHandler) allow(action string, r *http.Request) bool {
	if h.limiter == nil {
		return true
	}
	return h.limiter.Allow(action+":"+middleware.ClientIP(r), 10, time.Minute)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
