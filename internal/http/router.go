package http

import (
	"net/http"
	"strings"
	"time"

	"ats/internal/domain/user"
	"ats/internal/http/handlers"
	"ats/internal/http/metrics"
	httpmw "ats/internal/http/middleware"
	"ats/internal/storage"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	JobHandler         *handlers.JobHandler
	ApplicationHandler *handlers.ApplicationHandler
	ResumeHandler      *handlers.ResumeHandler
	ProfileHandler     *handlers.ProfileHandler
	AdminHandler       *handlers.AdminHandler
	MetricsHandler     *handlers.MetricsHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Metrics            *metrics.Collector
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

// Sized above the resume limit so multipart overhead does not trip it.
const maxBodyBytes = storage.MaxResumeSize + 1<<20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging, httpmw.BodyLimit(maxBodyBytes), httpmw.Recover, httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		}

		if strings.HasPrefix(path, "/candidate") || strings.HasPrefix(path, "/recruiter") || strings.HasPrefix(path, "/admin") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
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
	case req.Method == http.MethodGet && path == "/candidate/profile":
		httpmw.RequireRole(user.RoleCandidate)(http.HandlerFunc(r.deps.ProfileHandler.Get)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && path == "/candidate/profile":
		httpmw.RequireRole(user.RoleCandidate)(http.HandlerFunc(r.deps.ProfileHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/recruiter/profile":
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.ProfileHandler.Get)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && path == "/recruiter/profile":
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.ProfileHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/profile":
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.ProfileHandler.Get)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && path == "/admin/profile":
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.ProfileHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/candidate/jobs":
		httpmw.RequireRole(user.RoleCandidate)(http.HandlerFunc(r.deps.JobHandler.ListOpen)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/candidate/jobs/"):
		httpmw.RequireRole(user.RoleCandidate)(http.HandlerFunc(r.deps.JobHandler.GetOpen)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/candidate/applications":
		httpmw.RequireRole(user.RoleCandidate)(http.HandlerFunc(r.deps.ApplicationHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/candidate/applications":
		httpmw.RequireRole(user.RoleCandidate)(http.HandlerFunc(r.deps.ApplicationHandler.Dashboard)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/recruiter/jobs":
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.JobHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/recruiter/jobs":
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.JobHandler.ListMine)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/recruiter/jobs/") && strings.HasSuffix(path, "/status"):
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.JobHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/recruiter/jobs/") && strings.HasSuffix(path, "/applicants"):
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.JobHandler.Applicants)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/recruiter/applications/") && strings.HasSuffix(path, "/status"):
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.ApplicationHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/recruiter/resumes/") && strings.HasSuffix(path, "/download"):
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.ResumeHandler.Download)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/dashboard/stats":
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.AdminHandler.Stats)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/users":
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.AdminHandler.Users)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/jobs":
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.AdminHandler.Jobs)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}
