package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"med-reminder/internal/middleware"
	"med-reminder/internal/ports/backend"
	"med-reminder/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, caps capabilities.Resolver) {
	r.Route("/admin", func(ar chi.Router) {
		ar.Get("/stats", statsHandler(svc, caps))
		ar.Get("/users", listUsersHandler(svc, caps))
		ar.Put("/users/{userID}/role", setRoleHandler(svc, caps))
		ar.Put("/users/{userID}/lockout", setLockoutHandler(svc, caps))
		ar.Delete("/users/{userID}", deleteUserHandler(svc, caps))
		ar.Get("/audit-logs", auditLogsHandler(svc, caps))
		ar.Get("/logs/tail", logTailHandler(svc, caps))
	})
}

type roleRequest struct {
	Role string `json:"role"`
}

type lockoutRequest struct {
	Locked bool `json:"locked"`
}

type logTailResponse struct {
	Lines []string `json:"lines"`
}

// statsHandler godoc
// @Summary Estadísticas agregadas
// @Tags admin
// @Produce json
// @Success 200 {object} Stats
// @Failure 403 {string} string "forbidden"
// @Router /admin/stats [get]
func statsHandler(svc *Service, caps capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireCapability(w, r, caps, capabilities.StatsRead) {
			return
		}
		st, err := svc.Stats(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

// listUsersHandler godoc
// @Summary Listar usuarios
// @Tags admin
// @Produce json
// @Success 200 {array} account.User
// @Router /admin/users [get]
func listUsersHandler(svc *Service, caps capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireCapability(w, r, caps, capabilities.UsersManage) {
			return
		}
		users, err := svc.Users(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}

// setRoleHandler godoc
// @Summary Cambiar rol
// @Tags admin
// @Accept json
// @Produce json
// @Param userID path string true "Usuario"
// @Param payload body roleRequest true "user | moderator | admin"
// @Success 200 {object} account.User
// @Router /admin/users/{userID}/role [put]
func setRoleHandler(svc *Service, caps capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireCapability(w, r, caps, capabilities.UsersManage) {
			return
		}
		var req roleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		u, err := svc.SetRole(r.Context(), chi.URLParam(r, "userID"), req.Role)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// setLockoutHandler godoc
// @Summary Bloquear / desbloquear usuario
// @Tags admin
// @Accept json
// @Produce json
// @Param userID path string true "Usuario"
// @Param payload body lockoutRequest true "Estado"
// @Success 200 {object} account.User
// @Router /admin/users/{userID}/lockout [put]
func setLockoutHandler(svc *Service, caps capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireCapability(w, r, caps, capabilities.UsersManage) {
			return
		}
		var req lockoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		u, err := svc.SetLockout(r.Context(), chi.URLParam(r, "userID"), req.Locked)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// deleteUserHandler godoc
// @Summary Borrar usuario
// @Tags admin
// @Param userID path string true "Usuario"
// @Success 204
// @Router /admin/users/{userID} [delete]
func deleteUserHandler(svc *Service, caps capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireCapability(w, r, caps, capabilities.UsersManage) {
			return
		}
		if err := svc.DeleteUser(r.Context(), chi.URLParam(r, "userID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// auditLogsHandler godoc
// @Summary Audit logs
// @Description Paginado; filtros por rango de fechas (YYYY-MM-DD o RFC3339), acción, entidad y usuario.
// @Tags admin
// @Produce json
// @Param page query int false "Página (desde 1)"
// @Param limit query int false "Tamaño de página (máx 100)"
// @Param from query string false "Desde"
// @Param to query string false "Hasta"
// @Param action query string false "Acción"
// @Param entity query string false "Entidad"
// @Param user query string false "Usuario"
// @Success 200 {object} AuditPage
// @Router /admin/audit-logs [get]
func auditLogsHandler(svc *Service, caps capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireCapability(w, r, caps, capabilities.AuditRead) {
			return
		}
		q, err := parseAuditQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		page, err := svc.AuditLogs(r.Context(), q)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// logTailHandler godoc
// @Summary Últimas líneas del log del backend
// @Tags admin
// @Produce json
// @Param lines query int false "Cantidad de líneas (default 100, máx 1000)"
// @Success 200 {object} logTailResponse
// @Router /admin/logs/tail [get]
func logTailHandler(svc *Service, caps capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireCapability(w, r, caps, capabilities.LogsRead) {
			return
		}
		n := 0
		if v := strings.TrimSpace(r.URL.Query().Get("lines")); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "lines must be a number", http.StatusBadRequest)
				return
			}
			n = parsed
		}
		lines, err := svc.LogTail(r.Context(), n)
		if err != nil {
			writeError(w, err)
			return
		}
		if lines == nil {
			lines = []string{}
		}
		writeJSON(w, http.StatusOK, logTailResponse{Lines: lines})
	}
}

func parseAuditQuery(r *http.Request) (AuditQuery, error) {
	v := r.URL.Query()
	q := AuditQuery{
		Action: v.Get("action"),
		Entity: v.Get("entity"),
		UserID: v.Get("user"),
	}
	var err error
	if s := strings.TrimSpace(v.Get("page")); s != "" {
		if q.Page, err = strconv.Atoi(s); err != nil {
			return q, errors.New("page must be a number")
		}
	}
	if s := strings.TrimSpace(v.Get("limit")); s != "" {
		if q.Limit, err = strconv.Atoi(s); err != nil {
			return q, errors.New("limit must be a number")
		}
	}
	if q.From, err = parseTime(v.Get("from")); err != nil {
		return q, errors.New("from must be YYYY-MM-DD or RFC3339")
	}
	if q.To, err = parseTime(v.Get("to")); err != nil {
		return q, errors.New("to must be YYYY-MM-DD or RFC3339")
	}
	return q, nil
}

func parseTime(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func requireCapability(w http.ResponseWriter, r *http.Request, caps capabilities.Resolver, c capabilities.Capability) bool {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	allowed, err := caps.Has(r.Context(), claims.Role, c)
	if err != nil || !allowed {
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	if st, msg, ok := backend.HTTPStatus(err); ok {
		http.Error(w, msg, st)
		return
	}
	if errors.Is(err, ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
