package assistant

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"med-reminder/internal/middleware"
	"med-reminder/internal/ports/backend"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/assistant", func(ar chi.Router) {
		ar.Post("/chat", chatHandler(svc))
		ar.Get("/bmi", bmiAnalysisHandler(svc))
		ar.Get("/interactions", interactionsHandler(svc))
	})
}

type chatRequest struct {
	Message string `json:"message"`
}

// chatHandler godoc
// @Summary Chat con el asistente
// @Tags assistant
// @Accept json
// @Produce json
// @Param payload body chatRequest true "Mensaje"
// @Success 200 {object} Reply
// @Failure 400 {string} string "invalid input"
// @Router /assistant/chat [post]
func chatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		out, err := svc.Chat(r.Context(), req.Message)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// bmiAnalysisHandler godoc
// @Summary Análisis de IMC
// @Tags assistant
// @Produce json
// @Success 200 {object} Reply
// @Router /assistant/bmi [get]
func bmiAnalysisHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		out, err := svc.BMIAnalysis(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// interactionsHandler godoc
// @Summary Análisis de interacciones
// @Tags assistant
// @Produce json
// @Success 200 {object} Reply
// @Router /assistant/interactions [get]
func interactionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		out, err := svc.InteractionAnalysis(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeError(w http.ResponseWriter, err error) {
	if st, msg, ok := backend.HTTPStatus(err); ok {
		http.Error(w, msg, st)
		return
	}
	if errors.Is(err, ErrInvalidInput) {
		http.Error(w, "message must be between 1 and 2000 characters", http.StatusBadRequest)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
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
