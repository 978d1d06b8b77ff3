package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/klimenko666/dptmptch/internal/http/handlers"
	"github.com/klimenko666/dptmptch/internal/http/metrics"
	httpmw "github.com/klimenko666/dptmptch/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler     *handlers.AuthHandler
	EmployerHandler *handlers.EmployerHandler
	VacancyHandler  *handlers.VacancyHandler
	SessionAuth     *httpmw.SessionMiddleware
	Metrics         *metrics.Collector
	RequestTimeout  time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging, httpmw.BodyLimit(maxBodyBytes), httpmw.Recover, httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	metricsHandler := metrics.NewHandler(r.deps.Metrics)

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/api/health":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"OK"}`))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			metricsHandler.ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/auth/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/auth/logout":
			r.deps.AuthHandler.Logout(w, req)
			return
		case req.Method == http.MethodGet && path == "/api/vacancies":
			r.deps.VacancyHandler.ListPublic(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/vacancies/"):
			r.deps.VacancyHandler.Get(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/companies/vacancy/"):
			r.deps.EmployerHandler.CompanyByVacancy(w, req)
			return
		}

		if path == "/api/auth/me" || strings.HasPrefix(path, "/api/employer/") {
			protected := r.deps.SessionAuth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/api/auth/me":
		r.deps.AuthHandler.Me(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/employer/profile":
		r.deps.EmployerHandler.GetProfile(w, req)
		return
	case req.Method == http.MethodPut && path == "/api/employer/profile":
		r.deps.EmployerHandler.UpdateProfile(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/employer/vacancies":
		r.deps.VacancyHandler.ListByEmployer(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/employer/vacancies/archived":
		r.deps.VacancyHandler.ListArchived(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/employer/vacancies":
		r.deps.VacancyHandler.Create(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/api/employer/vacancies/") && strings.HasSuffix(path, "/status"):
		r.deps.VacancyHandler.UpdateStatus(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/api/employer/vacancies/") && strings.HasSuffix(path, "/archive"):
		r.deps.VacancyHandler.Archive(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/api/employer/vacancies/") && strings.HasSuffix(path, "/restore"):
		r.deps.VacancyHandler.Restore(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/api/employer/vacancies/"):
		r.deps.VacancyHandler.Update(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/employer/vacancies/"):
		r.deps.VacancyHandler.Delete(w, req)
		return
	}

	http.NotFound(w, req)
}
