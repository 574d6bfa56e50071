package reminders

import (
	"context"
	"errors"
	"fmt"

	"med-reminder/internal/domain/tracker"
	"med-reminder/internal/platform/logger"
)

// Notifier es un canal de alertas (escritorio, Telegram, push).
type Notifier interface {
	// Alert muestra el popup inicial con sonido.
	Alert(ctx context.Context, a tracker.Alert) error
	// Ring repite el sonido mientras la alerta siga abierta.
	Ring(ctx context.Context, a tracker.Alert) error
	// Notify manda un mensaje libre (p.ej. resumen semanal).
	Notify(ctx context.Context, title, message string) error
}

// Multi reparte a varios canales. Un canal que falla se loguea y no corta a los demás.
type Multi struct {
	sinks []namedNotifier
	log   logger.Logger
}

type namedNotifier struct {
	name string
	n    Notifier
}

func NewMulti(log logger.Logger) *Multi {
	if log == nil {
		log = logger.Nop()
	}
	return &Multi{log: log.With(map[string]any{"component": "notifier"})}
}

func (m *Multi) Add(name string, n Notifier) {
	if n == nil {
		return
	}
	m.sinks = append(m.sinks, namedNotifier{name: name, n: n})
}

func (m *Multi) Len() int { return len(m.sinks) }

func (m *Multi) Alert(ctx context.Context, a tracker.Alert) error {
	return m.each("alert", func(n Notifier) error { return n.Alert(ctx, a) })
}

func (m *Multi) Ring(ctx context.Context, a tracker.Alert) error {
	return m.each("ring", func(n Notifier) error { return n.Ring(ctx, a) })
}

func (m *Multi) Notify(ctx context.Context, title, message string) error {
	return m.each("notify", func(n Notifier) error { return n.Notify(ctx, title, message) })
}

func (m *Multi) each(op string, fn func(Notifier) error) error {
	var errs []error
	for _, s := range m.sinks {
		if err := fn(s.n); err != nil {
			m.log.Warn("notifier failed", map[string]any{"sink": s.name, "op": op, "error": err})
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}

// AlertText arma título y cuerpo comunes a todos los canales.
func AlertText(a tracker.Alert) (title, body string) {
	o := a.Occurrence
	title = "Time to take " + o.MedicineName
	body = fmt.Sprintf("%s %s at %s", o.MedicineName, o.Dose.String(), o.Time)
	if o.Dosage != "" {
		body += " (" + o.Dosage + ")"
	}
	return title, body
}
