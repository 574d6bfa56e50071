package medicines

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"med-reminder/internal/middleware"
	"med-reminder/internal/platform/debounce"
	"med-reminder/internal/ports/backend"
	"med-reminder/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, caps capabilities.Resolver) {
	r.Route("/medicines", func(mr chi.Router) {
		mr.Get("/", listMedicinesHandler(svc))
		mr.Post("/", addMedicineHandler(svc))
		mr.Get("/search", searchCatalogHandler(svc))
		mr.Delete("/{medicineID}", removeMedicineHandler(svc))
	})

	r.Route("/catalog", func(cr chi.Router) {
		cr.Get("/", listCatalogHandler(svc))
		cr.Post("/", createCatalogHandler(svc, caps))
		cr.Delete("/{catalogID}", deleteCatalogHandler(svc, caps))
	})
}

type doseDTO struct {
	Amount float64  `json:"amount"`
	Unit   DoseUnit `json:"unit"`
}

type timeDTO struct {
	Time   string `json:"time"`
	Dosage string `json:"dosage"`
}

type addMedicineRequest struct {
	Name         string    `json:"name"`
	Type         Type      `json:"type"`
	Dose         doseDTO   `json:"dose"`
	SelectedDays []Weekday `json:"selectedDays"`
	Times        []timeDTO `json:"times"`
}

// listMedicinesHandler godoc
// @Summary Listar medicamentos del usuario
// @Description Trae la lista desde el backend y refresca la copia en memoria que usa el watcher.
// @Tags medicines
// @Produce json
// @Param Authorization header string false "Bearer token (si no viene se usa la sesión guardada)"
// @Success 200 {array} Medicine
// @Failure 401 {string} string "unauthorized"
// @Failure 502 {string} string "backend error"
// @Router /medicines [get]
func listMedicinesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		list, err := svc.Refresh(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// addMedicineHandler godoc
// @Summary Agregar medicamento
// @Description Alta en dos pasos (identificar + programar) enviada en un solo request. Horarios en formato HH:MM 24h.
// @Tags medicines
// @Accept json
// @Produce json
// @Param payload body addMedicineRequest true "Medicamento y horario"
// @Success 201 {object} Medicine
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "operation in progress"
// @Router /medicines [post]
func addMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req addMedicineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		times := make([]TimeInput, 0, len(req.Times))
		for _, t := range req.Times {
			times = append(times, TimeInput{Time: t.Time, Dosage: t.Dosage})
		}

		m, err := svc.Add(r.Context(), IdentifyInput{
			Name: req.Name,
			Type: req.Type,
			Dose: Dose{Amount: req.Dose.Amount, Unit: req.Dose.Unit},
		}, ScheduleInput{
			SelectedDays: req.SelectedDays,
			Times:        times,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

// removeMedicineHandler godoc
// @Summary Eliminar medicamento
// @Tags medicines
// @Param medicineID path string true "ID del medicamento"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "operation in progress"
// @Router /medicines/{medicineID} [delete]
func removeMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		if err := svc.Remove(r.Context(), chi.URLParam(r, "medicineID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// searchCatalogHandler godoc
// @Summary Buscar en el catálogo mientras se escribe
// @Description Espera 250ms; si llega otra búsqueda con la misma session, esta responde 409 y se descarta.
// @Tags medicines
// @Produce json
// @Param q query string true "Texto a buscar"
// @Param session query string false "ID del input del cliente (default: usuario)"
// @Success 200 {array} CatalogEntry
// @Failure 409 {string} string "superseded"
// @Router /medicines/search [get]
func searchCatalogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		session := strings.TrimSpace(r.URL.Query().Get("session"))
		if session == "" {
			session = claims.UserID
		}

		out, err := svc.Search(r.Context(), session, r.URL.Query().Get("q"))
		if err != nil {
			switch {
			case errors.Is(err, debounce.ErrSuperseded):
				http.Error(w, "superseded", http.StatusConflict)
			case errors.Is(err, context.Canceled):
				// el cliente se fue; no hay a quién responder
			default:
				writeError(w, err)
			}
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listCatalogHandler godoc
// @Summary Listar catálogo público
// @Tags catalog
// @Produce json
// @Success 200 {array} CatalogEntry
// @Router /catalog [get]
func listCatalogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListCatalog(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createCatalogHandler godoc
// @Summary Crear entrada de catálogo (admin/moderador)
// @Tags catalog
// @Accept json
// @Produce json
// @Param payload body CatalogEntry true "Entrada"
// @Success 201 {object} CatalogEntry
// @Failure 403 {string} string "forbidden"
// @Router /catalog [post]
func createCatalogHandler(svc *Service, caps capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireCapability(w, r, caps, capabilities.CatalogWrite) {
			return
		}
		var req CatalogEntry
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		created, err := svc.CreateCatalog(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

// deleteCatalogHandler godoc
// @Summary Eliminar entrada de catálogo (admin/moderador)
// @Tags catalog
// @Param catalogID path string true "ID de la entrada"
// @Success 204
// @Failure 403 {string} string "forbidden"
// @Router /catalog/{catalogID} [delete]
func deleteCatalogHandler(svc *Service, caps capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireCapability(w, r, caps, capabilities.CatalogWrite) {
			return
		}
		if err := svc.DeleteCatalog(r.Context(), chi.URLParam(r, "catalogID")); err != nil {
			writeError(w, err)
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
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrBusy):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado en handlers de distintos módulos a propósito:
// cada paquete de dominio queda autocontenido.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
