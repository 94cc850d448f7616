package httpapi

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Router thin wrapper over the standard library http.ServeMux
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// HandleHandler registers an http.Handler.
func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterActionRoutes legacy single endpoint, also under its old PHP path.
func (r *Router) RegisterActionRoutes(a *ActionHandler) {
	r.HandleHandler("/api", a)
	r.HandleHandler("/api.php", a)
}

// RegisterAPIRoutes REST aliases of the actions plus the history export.
func (r *Router) RegisterAPIRoutes(auth *AuthHandler, gates *GateHandler) {
	r.Handle("/api/v1/auth/login", methodOnly(http.MethodPost, auth.Login))
	r.Handle("/api/v1/auth/logout", methodOnly(http.MethodPost, auth.Logout))
	r.Handle("/api/v1/status", methodOnly(http.MethodGet, gates.GetStatus))
	r.Handle("/api/v1/gates/control", methodOnly(http.MethodPost, gates.ControlGate))
	r.Handle("/api/v1/gates/history/export", methodOnly(http.MethodGet, gates.ExportHistory))
}

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// RegisterHealthRoutes /healthz reports ok when every check passes.
func (r *Router) RegisterHealthRoutes(checks map[string]HealthCheck) {
	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		status := make(map[string]string, len(checks))
		healthy := true
		for name, check := range checks {
			if err := check(ctx); err != nil {
				r.logger.Warn("Health check failed", zap.String("check", name), zap.Error(err))
				status[name] = err.Error()
				healthy = false
				continue
			}
			status[name] = "ok"
		}

		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, Result{Success: healthy, Data: status})
	})
}

func methodOnly(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, req)
	}
}
