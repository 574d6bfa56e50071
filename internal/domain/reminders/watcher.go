package reminders

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"med-reminder/internal/domain/schedule"
	"med-reminder/internal/domain/tracker"
	"med-reminder/internal/platform/logger"
)

const (
	DefaultPollInterval = 5 * time.Second
	DefaultAlarmRepeat  = 28 * time.Second

	// Ventana de disparo: de 0 a 1 minuto pasado el horario.
	fireWindowMinutes = 1
)

// KeyScope define cómo se identifica una alerta ya disparada.
type KeyScope string

const (
	// ScopeSession: medicamento+horario. Una toma diaria alerta una sola vez por sesión.
	ScopeSession KeyScope = "session"
	// ScopeDaily: medicamento+horario+fecha. Alerta una vez por día.
	ScopeDaily KeyScope = "daily"
)

type WatcherConfig struct {
	AlarmRepeat time.Duration
	Scope       KeyScope
	Location    *time.Location
}

// Watcher detecta tomas que acaban de vencer y dispara una alerta por toma.
type Watcher struct {
	meds     tracker.MedicineSource
	store    *tracker.Store
	notifier Notifier
	log      logger.Logger
	now      func() time.Time
	cfg      WatcherConfig

	mu      sync.Mutex
	base    context.Context
	alarms  map[string]context.CancelFunc
	stopped bool
}

func NewWatcher(meds tracker.MedicineSource, store *tracker.Store, notifier Notifier, log logger.Logger, cfg WatcherConfig) *Watcher {
	if cfg.AlarmRepeat <= 0 {
		cfg.AlarmRepeat = DefaultAlarmRepeat
	}
	if cfg.Scope == "" {
		cfg.Scope = ScopeSession
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}

	w := &Watcher{
		meds:     meds,
		store:    store,
		notifier: notifier,
		log:      log.With(map[string]any{"component": "watcher"}),
		now:      time.Now,
		cfg:      cfg,
		base:     context.Background(),
		alarms:   map[string]context.CancelFunc{},
	}

	// Una toma marcada por cualquier vía cierra su alerta y corta la alarma.
	store.Subscribe(func(a tracker.Action, s tracker.State) {
		act, ok := a.(tracker.ToggleCompletion)
		if !ok {
			return
		}
		for key, alert := range s.Alerts {
			if alert.Occurrence.Key() == act.Key {
				w.close(key, true)
			}
		}
	})

	return w
}

// AlertKey identifica la alerta de una toma según el scope configurado.
func (w *Watcher) AlertKey(o schedule.Occurrence) string {
	if w.cfg.Scope == ScopeDaily {
		return fmt.Sprintf("%s@%s@%s", o.MedicineID, o.Time, o.Date)
	}
	return fmt.Sprintf("%s@%s", o.MedicineID, o.Time)
}

// Check es una pasada del watcher: dispara las alertas de tomas de hoy que vencieron
// hace 0 o 1 minuto, no están tomadas y no se dispararon antes.
func (w *Watcher) Check(ctx context.Context) []tracker.Alert {
	now := w.now().In(w.cfg.Location)
	nowMin := now.Hour()*60 + now.Minute()

	fired := make([]tracker.Alert, 0)
	for _, o := range schedule.Expand(w.meds.Current(), now, w.store.IsCompleted) {
		if o.Completed {
			continue
		}
		schedMin, err := o.Minutes()
		if err != nil {
			w.log.Debug("skipping occurrence with bad time", map[string]any{"medicine_id": o.MedicineID, "time": o.Time})
			continue
		}
		diff := nowMin - schedMin
		if diff < 0 || diff > fireWindowMinutes {
			continue
		}

		alert := tracker.Alert{Key: w.AlertKey(o), Occurrence: o, FiredAt: now}
		if _, err := w.store.Dispatch(tracker.AlertFired{Alert: alert}); err != nil {
			if !errors.Is(err, tracker.ErrAlreadyFired) && !errors.Is(err, tracker.ErrAlreadyCompleted) {
				w.log.Warn("alert dispatch failed", map[string]any{"key": alert.Key, "error": err})
			}
			continue
		}

		w.log.Info("dose due", map[string]any{"key": alert.Key, "medicine": o.MedicineName, "time": o.Time})
		if w.notifier != nil {
			if err := w.notifier.Alert(ctx, alert); err != nil {
				w.log.Warn("alert delivery failed", map[string]any{"key": alert.Key, "error": err})
			}
		}
		w.startAlarm(alert)
		fired = append(fired, alert)
	}
	return fired
}

// Active devuelve las alertas abiertas ordenadas por hora de disparo.
func (w *Watcher) Active() []tracker.Alert {
	s := w.store.State()
	out := make([]tracker.Alert, 0, len(s.Alerts))
	for _, a := range s.Alerts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].FiredAt.Equal(out[j].FiredAt) {
			return out[i].FiredAt.Before(out[j].FiredAt)
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Take marca la toma como tomada, corta la alarma y cierra la alerta.
func (w *Watcher) Take(ctx context.Context, alertKey string) (schedule.Occurrence, error) {
	a, ok := w.store.State().Alerts[alertKey]
	if !ok {
		return schedule.Occurrence{}, tracker.ErrNoSuchAlert
	}

	err := w.store.ToggleCompleted(ctx, a.Occurrence)
	if err != nil && !errors.Is(err, tracker.ErrAlreadyCompleted) {
		return schedule.Occurrence{}, err
	}
	w.close(alertKey, true)

	o := a.Occurrence
	o.Completed = true
	return o, nil
}

// Dismiss corta la alarma sin marcar la toma y resetea el mute.
func (w *Watcher) Dismiss(alertKey string) error {
	if _, ok := w.store.State().Alerts[alertKey]; !ok {
		return tracker.ErrNoSuchAlert
	}
	w.close(alertKey, false)
	return nil
}

func (w *Watcher) SetMuted(muted bool) {
	_, _ = w.store.Dispatch(tracker.MuteToggled{Muted: muted})
}

// Stop corta todas las alarmas (apagado del proceso).
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	for key, cancel := range w.alarms {
		cancel()
		delete(w.alarms, key)
	}
}

func (w *Watcher) close(alertKey string, taken bool) {
	w.stopAlarm(alertKey)
	if _, err := w.store.Dispatch(tracker.AlertDismissed{AlertKey: alertKey, Taken: taken}); err != nil &&
		!errors.Is(err, tracker.ErrNoSuchAlert) {
		w.log.Warn("alert close failed", map[string]any{"key": alertKey, "error": err})
	}
}

func (w *Watcher) startAlarm(a tracker.Alert) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if _, running := w.alarms[a.Key]; running {
		return
	}

	ctx, cancel := context.WithCancel(w.base)
	w.alarms[a.Key] = cancel

	go func() {
		t := time.NewTicker(w.cfg.AlarmRepeat)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if w.store.State().Muted || w.notifier == nil {
					continue
				}
				if err := w.notifier.Ring(ctx, a); err != nil {
					w.log.Debug("alarm ring failed", map[string]any{"key": a.Key, "error": err})
				}
			}
		}
	}()
}

func (w *Watcher) stopAlarm(alertKey string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if cancel, ok := w.alarms[alertKey]; ok {
		cancel()
		delete(w.alarms, alertKey)
	}
}

func (w *Watcher) alarmRunning(alertKey string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.alarms[alertKey]
	return ok
}
