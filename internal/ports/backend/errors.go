package backend

import (
	"errors"
	"net/http"
)

// RateLimitMessage es el texto fijo que se muestra ante un 429.
const RateLimitMessage = "Too many requests. Please wait a moment and try again."

// GenericMessage se usa cuando el backend no manda mensaje propio.
const GenericMessage = "Something went wrong. Please try again."

var (
	// ErrUnauthorized: 401 del backend. El token guardado ya fue borrado.
	ErrUnauthorized = errors.New("backend: unauthorized")
	// ErrRateLimited: 429 del backend.
	ErrRateLimited = errors.New(RateLimitMessage)
	// ErrNotConfigured: no hay BACKEND_URL.
	ErrNotConfigured = errors.New("backend: not configured")
	// ErrUnavailable: error de red/timeout o respuesta imposible de decodificar.
	ErrUnavailable = errors.New("backend: unavailable")
)

// APIError es cualquier otra respuesta no-2xx.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// HTTPStatus traduce errores de upstream a status + mensaje para el cliente local.
// ok=false si err no viene del backend.
func HTTPStatus(err error) (status int, msg string, ok bool) {
	var apiErr *APIError
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "session expired, please log in again", true
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, RateLimitMessage, true
	case errors.Is(err, ErrNotConfigured):
		return http.StatusServiceUnavailable, "backend not configured", true
	case errors.Is(err, ErrUnavailable):
		return http.StatusBadGateway, GenericMessage, true
	case errors.As(err, &apiErr):
		switch apiErr.Status {
		case http.StatusBadRequest, http.StatusNotFound, http.StatusConflict, http.StatusForbidden, http.StatusUnprocessableEntity:
			return apiErr.Status, apiErr.Message, true
		}
		return http.StatusBadGateway, apiErr.Message, true
	}
	return 0, "", false
}
