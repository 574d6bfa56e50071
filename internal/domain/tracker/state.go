package tracker

import (
	"time"

	"med-reminder/internal/domain/schedule"
)

// Alert es una alerta de "es hora" activa (popup + alarma).
type Alert struct {
	Key        string              `json:"key"`
	Occurrence schedule.Occurrence `json:"occurrence"`
	FiredAt    time.Time           `json:"fired_at"`
}

// State es todo el estado de seguimiento del día. Se trata como inmutable:
// Reduce devuelve un State nuevo y nunca modifica los mapas recibidos.
type State struct {
	SelectedDay string
	Completions map[string]bool
	Processing  bool

	// Fired: alertas ya disparadas en esta sesión (no se persiste).
	Fired  map[string]bool
	Alerts map[string]Alert
	Muted  bool
}

func NewState() State {
	return State{
		Completions: map[string]bool{},
		Fired:       map[string]bool{},
		Alerts:      map[string]Alert{},
	}
}

func (s State) IsCompleted(key string) bool { return s.Completions[key] }

func (s State) clone() State {
	out := s
	out.Completions = copyBools(s.Completions)
	out.Fired = copyBools(s.Fired)
	out.Alerts = make(map[string]Alert, len(s.Alerts))
	for k, v := range s.Alerts {
		out.Alerts[k] = v
	}
	return out
}

func copyBools(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
