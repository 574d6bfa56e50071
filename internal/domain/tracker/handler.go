package tracker

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"med-reminder/internal/domain/medicines"
	"med-reminder/internal/domain/schedule"
	"med-reminder/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// MedicineSource evita que tracker dependa del servicio de medicamentos completo.
type MedicineSource interface {
	Current() []medicines.Medicine
}

type Deps struct {
	Store    *Store
	Meds     MedicineSource
	Now      func() time.Time
	Location *time.Location
}

func RegisterRoutes(r chi.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Location == nil {
		d.Location = time.Local
	}

	r.Get("/schedule", scheduleHandler(d))
	r.Post("/doses/complete", completeDoseHandler(d))
	r.Get("/adherence/week", weeklyStatsHandler(d))
}

type scheduleResponse struct {
	Date        string                `json:"date"`
	Weekday     medicines.Weekday     `json:"weekday"`
	Occurrences []schedule.Occurrence `json:"occurrences"`
	Pending     int                   `json:"pending"`
}

type completeDoseRequest struct {
	MedicineID string `json:"medicine_id"`
	TimeIndex  int    `json:"time_index"`
	Date       string `json:"date"`
}

// scheduleHandler godoc
// @Summary Tomas del día
// @Description Proyecta el horario semanal sobre la fecha indicada (default: día seleccionado o hoy). Pendientes primero, luego por horario.
// @Tags schedule
// @Produce json
// @Param date query string false "Fecha YYYY-MM-DD"
// @Success 200 {object} scheduleResponse
// @Failure 400 {string} string "invalid date"
// @Failure 401 {string} string "unauthorized"
// @Router /schedule [get]
func scheduleHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		dateStr := strings.TrimSpace(r.URL.Query().Get("date"))
		if dateStr == "" {
			dateStr = d.Store.State().SelectedDay
		}
		if dateStr == "" {
			dateStr = schedule.DateString(d.Now().In(d.Location))
		}

		date, err := schedule.ParseDate(dateStr, d.Location)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		if _, err := d.Store.Dispatch(SelectDay{Date: dateStr}); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		occ := schedule.Expand(d.Meds.Current(), date, d.Store.IsCompleted)
		pending := 0
		for _, o := range occ {
			if !o.Completed {
				pending++
			}
		}

		writeJSON(w, http.StatusOK, scheduleResponse{
			Date:        dateStr,
			Weekday:     schedule.WeekdayOf(date),
			Occurrences: occ,
			Pending:     pending,
		})
	}
}

// completeDoseHandler godoc
// @Summary Marcar toma como tomada
// @Description Monótono: una toma ya marcada no se puede volver a marcar ni desmarcar (409).
// @Tags schedule
// @Accept json
// @Produce json
// @Param payload body completeDoseRequest true "Toma"
// @Success 200 {object} schedule.Occurrence
// @Failure 400 {string} string "invalid json"
// @Failure 404 {string} string "dose not scheduled on that date"
// @Failure 409 {string} string "already taken / busy"
// @Router /doses/complete [post]
func completeDoseHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req completeDoseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Date) == "" {
			req.Date = schedule.DateString(d.Now().In(d.Location))
		}
		date, err := schedule.ParseDate(req.Date, d.Location)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		o, ok := schedule.Find(d.Meds.Current(), req.MedicineID, req.TimeIndex, date, d.Store.IsCompleted)
		if !ok {
			http.Error(w, "dose not scheduled on that date", http.StatusNotFound)
			return
		}

		if err := d.Store.ToggleCompleted(r.Context(), o); err != nil {
			switch {
			case errors.Is(err, ErrAlreadyCompleted), errors.Is(err, ErrBusy):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, err.Error(), http.StatusBadRequest)
			}
			return
		}

		o.Completed = true
		writeJSON(w, http.StatusOK, o)
	}
}

// weeklyStatsHandler godoc
// @Summary Adherencia semanal
// @Tags schedule
// @Produce json
// @Param end query string false "Último día YYYY-MM-DD (default: hoy)"
// @Success 200 {object} WeekStats
// @Router /adherence/week [get]
func weeklyStatsHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		end := d.Now().In(d.Location)
		if v := strings.TrimSpace(r.URL.Query().Get("end")); v != "" {
			parsed, err := schedule.ParseDate(v, d.Location)
			if err != nil {
				http.Error(w, "end must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			end = parsed
		}

		writeJSON(w, http.StatusOK, Weekly(d.Meds.Current(), end, d.Store.IsCompleted))
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
