package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router thin wrapper over the standard http.ServeMux
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

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
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

// RegisterAuthRoutes public auth endpoints proxied to the hosted service
func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.Handle("/auth/api/v1/login", methodOnly(http.MethodPost, h.Login))
	r.Handle("/auth/api/v1/magic-link", methodOnly(http.MethodPost, h.MagicLink))
	r.Handle("/auth/api/v1/callback", methodOnly(http.MethodPost, h.Callback))
	r.Handle("/auth/api/v1/logout", methodOnly(http.MethodPost, h.Logout))
	r.Handle("/auth/api/v1/password", methodOnly(http.MethodPost, h.UpdatePassword))
	r.Handle("/auth/api/v1/forgot-password", methodOnly(http.MethodPost, h.ForgotPassword))
}

// RegisterCareRoutes caregiver portal, gated on the caregiver role record
func (r *Router) RegisterCareRoutes(h *CareHandler, gate *SessionGate) {
	r.Handle("/care/api/v1/session", gate.RequireCaregiver(methodOnly(http.MethodGet, h.Session)))
	r.Handle("/care/api/v1/recipients", gate.RequireCaregiver(methodOnly(http.MethodGet, h.Recipients)))
	r.Handle("/care/api/v1/wizard/steps", gate.RequireCaregiver(methodOnly(http.MethodGet, h.WizardSteps)))

	r.Handle("/care/api/v1/wizard/draft", gate.RequireCaregiver(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.GetDraft(w, req)
		case http.MethodPut:
			h.SaveDraft(w, req)
		case http.MethodDelete:
			h.DeleteDraft(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	r.Handle("/care/api/v1/reports", gate.RequireCaregiver(methodOnly(http.MethodPost, h.SubmitReport)))
	r.Handle("/care/api/v1/alerts", gate.RequireCaregiver(methodOnly(http.MethodPost, h.RaiseAlert)))
}

// RegisterProRoutes professional portal, gated on the professional role records
func (r *Router) RegisterProRoutes(h *ProHandler, gate *SessionGate) {
	r.Handle("/pro/api/v1/session", gate.RequireProfessional(methodOnly(http.MethodGet, func(w http.ResponseWriter, req *http.Request) {
		profile, _ := ProfileFrom(req.Context())
		writeJSON(w, http.StatusOK, Ok(map[string]any{
			"profile_id":   profile.ProfileID,
			"email":        profile.Email,
			"role":         profile.Role,
			"display_name": profile.DisplayName,
		}))
	})))

	r.Handle("/pro/api/v1/reports", gate.RequireProfessional(methodOnly(http.MethodGet, h.ListReports)))
	r.Handle("/pro/api/v1/reports/export", gate.RequireProfessional(methodOnly(http.MethodGet, h.ExportReports)))
	r.Handle("/pro/api/v1/reports/", gate.RequireProfessional(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimPrefix(req.URL.Path, "/pro/api/v1/reports/")
		if id == "" || id == "export" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.GetReport(w, req, id)
	}))

	r.Handle("/pro/api/v1/alerts", gate.RequireProfessional(methodOnly(http.MethodGet, h.ListAlerts)))
	r.Handle("/pro/api/v1/alerts/", gate.RequireProfessional(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		path := strings.TrimPrefix(req.URL.Path, "/pro/api/v1/alerts/")
		switch {
		case strings.HasSuffix(path, "/ack"):
			id := strings.TrimSuffix(path, "/ack")
			if id != "" && !strings.Contains(id, "/") {
				h.AcknowledgeAlert(w, req, id)
				return
			}
		case strings.HasSuffix(path, "/close"):
			id := strings.TrimSuffix(path, "/close")
			if id != "" && !strings.Contains(id, "/") {
				h.CloseAlert(w, req, id)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	r.Handle("/pro/api/v1/cases", gate.RequireProfessional(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.ListCases(w, req)
		case http.MethodPost:
			h.CreateCase(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	r.Handle("/pro/api/v1/cases/", gate.RequireProfessional(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimPrefix(req.URL.Path, "/pro/api/v1/cases/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.UpdateCase(w, req, id)
	}))

	r.Handle("/pro/api/v1/audit", gate.RequireProfessional(methodOnly(http.MethodGet, h.ListAudit)))
	r.Handle("/pro/api/v1/recipients", gate.RequireProfessional(methodOnly(http.MethodGet, h.ListRecipients)))
}
