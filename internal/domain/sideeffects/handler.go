package sideeffects

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"med-reminder/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/side-effects", func(sr chi.Router) {
		sr.Get("/", listHandler(svc))
		sr.Post("/", addHandler(svc))
		sr.Delete("/{entryID}", deleteHandler(svc))
	})
}

// listHandler godoc
// @Summary Efectos secundarios registrados
// @Tags side-effects
// @Produce json
// @Success 200 {array} Entry
// @Router /side-effects [get]
func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		writeJSON(w, http.StatusOK, svc.List(r.Context()))
	}
}

// addHandler godoc
// @Summary Registrar efecto secundario
// @Tags side-effects
// @Accept json
// @Produce json
// @Param payload body CreateInput true "Entrada"
// @Success 201 {object} Entry
// @Failure 400 {string} string "invalid input"
// @Router /side-effects [post]
func addHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		var req CreateInput
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		e, err := svc.Add(r.Context(), req)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "medicineName and description are required; severity must be mild, moderate or severe", http.StatusBadRequest)
				return
			}
			http.Error(w, "could not save entry", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, e)
	}
}

// deleteHandler godoc
// @Summary Borrar efecto secundario
// @Tags side-effects
// @Param entryID path string true "ID"
// @Success 204
// @Failure 404 {string} string "not found"
// @Router /side-effects/{entryID} [delete]
func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		if err := svc.Delete(r.Context(), chi.URLParam(r, "entryID")); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			http.Error(w, "could not delete entry", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
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
