package medapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"med-reminder/internal/ports/backend"
)

// envelope es la única forma de respuesta 2xx que acepta el cliente:
//
//	{"success": true,  "data": <payload>}
//	{"success": false, "message": "..."}
//
// data tiene siempre el tipo que declara cada endpoint (los listados son arrays).
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeEnvelope(raw []byte, out any) error {
	if len(strings.TrimSpace(string(raw))) == 0 {
		if out == nil {
			return nil
		}
		return fmt.Errorf("%w: empty response body", backend.ErrUnavailable)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: invalid json: %v", backend.ErrUnavailable, err)
	}
	if env.Success == nil {
		return fmt.Errorf("%w: response missing success flag", backend.ErrUnavailable)
	}
	if !*env.Success {
		msg := strings.TrimSpace(env.Message)
		if msg == "" {
			msg = backend.GenericMessage
		}
		return &backend.APIError{Status: http.StatusBadRequest, Message: msg}
	}
	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("%w: response missing data", backend.ErrUnavailable)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: unexpected data shape: %v", backend.ErrUnavailable, err)
	}
	return nil
}
