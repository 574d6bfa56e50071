package reminders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"med-reminder/internal/domain/tracker"
	"med-reminder/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, w *Watcher, adv *Advisor) {
	r.Route("/alerts", func(ar chi.Router) {
		ar.Get("/", listAlertsHandler(w))
		ar.Post("/mute", muteHandler(w))
		ar.Post("/{alertKey}/take", takeAlertHandler(w))
		ar.Post("/{alertKey}/dismiss", dismissAlertHandler(w))
	})
	r.Post("/doses/advisory", advisoryHandler(adv))
}

type alertsResponse struct {
	Alerts []tracker.Alert `json:"alerts"`
	Muted  bool            `json:"muted"`
}

type muteRequest struct {
	Muted bool `json:"muted"`
}

type advisoryRequest struct {
	MedicineID string `json:"medicine_id"`
	TimeIndex  int    `json:"time_index"`
}

// listAlertsHandler godoc
// @Summary Alertas abiertas
// @Description Alertas "es hora" disparadas por el watcher y todavía sin cerrar.
// @Tags alerts
// @Produce json
// @Success 200 {object} alertsResponse
// @Router /alerts [get]
func listAlertsHandler(w *Watcher) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !requireUser(rw, r) {
			return
		}
		writeJSON(rw, http.StatusOK, alertsResponse{
			Alerts: w.Active(),
			Muted:  w.store.State().Muted,
		})
	}
}

// takeAlertHandler godoc
// @Summary Tomar la dosis desde la alerta
// @Description Marca la toma, corta la alarma y cierra el popup.
// @Tags alerts
// @Produce json
// @Param alertKey path string true "Clave de la alerta"
// @Success 200 {object} schedule.Occurrence
// @Failure 404 {string} string "alert not active"
// @Failure 409 {string} string "busy"
// @Router /alerts/{alertKey}/take [post]
func takeAlertHandler(w *Watcher) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !requireUser(rw, r) {
			return
		}
		o, err := w.Take(r.Context(), chi.URLParam(r, "alertKey"))
		if err != nil {
			writeError(rw, err)
			return
		}
		writeJSON(rw, http.StatusOK, o)
	}
}

// dismissAlertHandler godoc
// @Summary Descartar alerta
// @Description Corta la alarma sin marcar la toma y resetea el mute.
// @Tags alerts
// @Param alertKey path string true "Clave de la alerta"
// @Success 204
// @Failure 404 {string} string "alert not active"
// @Router /alerts/{alertKey}/dismiss [post]
func dismissAlertHandler(w *Watcher) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !requireUser(rw, r) {
			return
		}
		if err := w.Dismiss(chi.URLParam(r, "alertKey")); err != nil {
			writeError(rw, err)
			return
		}
		rw.WriteHeader(http.StatusNoContent)
	}
}

// muteHandler godoc
// @Summary Silenciar la alarma
// @Tags alerts
// @Accept json
// @Param payload body muteRequest true "Estado del mute"
// @Success 204
// @Router /alerts/mute [post]
func muteHandler(w *Watcher) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !requireUser(rw, r) {
			return
		}
		var req muteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(rw, "invalid json", http.StatusBadRequest)
			return
		}
		w.SetMuted(req.Muted)
		rw.WriteHeader(http.StatusNoContent)
	}
}

// advisoryHandler godoc
// @Summary ¿Todavía puedo tomarla?
// @Description Para una toma de hoy vencida y sin marcar, consulta al asistente; si el backend falla responde la heurística local.
// @Tags alerts
// @Accept json
// @Produce json
// @Param payload body advisoryRequest true "Toma"
// @Success 200 {object} Advice
// @Failure 404 {string} string "dose not scheduled today"
// @Failure 409 {string} string "not overdue / already taken"
// @Router /doses/advisory [post]
func advisoryHandler(adv *Advisor) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !requireUser(rw, r) {
			return
		}
		var req advisoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(rw, "invalid json", http.StatusBadRequest)
			return
		}
		out, err := adv.Advise(r.Context(), req.MedicineID, req.TimeIndex)
		if err != nil {
			writeError(rw, err)
			return
		}
		writeJSON(rw, http.StatusOK, out)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tracker.ErrNoSuchAlert), errors.Is(err, ErrDoseNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, tracker.ErrBusy), errors.Is(err, ErrNotOverdue), errors.Is(err, ErrAlreadyTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func requireUser(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
