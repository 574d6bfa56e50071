package tracker

import (
	"errors"
	"fmt"
	"strings"

	"med-reminder/internal/domain/schedule"
)

var (
	ErrInvalidAction    = errors.New("invalid action")
	ErrAlreadyCompleted = errors.New("dose already marked as taken")
	ErrBusy             = errors.New("another completion is being saved")
	ErrAlreadyFired     = errors.New("alert already fired this session")
	ErrNoSuchAlert      = errors.New("alert not active")
)

// Reduce aplica a sobre s. Si la acción viola un invariante devuelve error y
// el estado original sin cambios.
func Reduce(s State, a Action) (State, error) {
	switch act := a.(type) {
	case SelectDay:
		if _, err := schedule.ParseDate(act.Date, nil); err != nil {
			return s, fmt.Errorf("%w: date %q", ErrInvalidAction, act.Date)
		}
		next := s.clone()
		next.SelectedDay = act.Date
		return next, nil

	case ToggleCompletion:
		if strings.TrimSpace(act.Key) == "" {
			return s, ErrInvalidAction
		}
		if s.Completions[act.Key] {
			return s, ErrAlreadyCompleted
		}
		if s.Processing {
			return s, ErrBusy
		}
		next := s.clone()
		next.Completions[act.Key] = true
		next.Processing = true
		return next, nil

	case Persisted:
		next := s.clone()
		next.Processing = false
		return next, nil

	case AlertFired:
		if strings.TrimSpace(act.Alert.Key) == "" {
			return s, ErrInvalidAction
		}
		if s.Fired[act.Alert.Key] {
			return s, ErrAlreadyFired
		}
		// Una toma ya registrada no vuelve a sonar.
		if s.Completions[act.Alert.Occurrence.Key()] {
			return s, ErrAlreadyCompleted
		}
		next := s.clone()
		next.Fired[act.Alert.Key] = true
		next.Alerts[act.Alert.Key] = act.Alert
		return next, nil

	case AlertDismissed:
		if _, ok := s.Alerts[act.AlertKey]; !ok {
			return s, ErrNoSuchAlert
		}
		next := s.clone()
		delete(next.Alerts, act.AlertKey)
		if !act.Taken {
			// Descartar a mano también resetea el mute.
			next.Muted = false
		}
		return next, nil

	case MuteToggled:
		next := s.clone()
		next.Muted = act.Muted
		return next, nil

	case LedgerLoaded:
		next := s.clone()
		next.Completions = copyBools(act.Completions)
		return next, nil
	}

	return s, fmt.Errorf("%w: %T", ErrInvalidAction, a)
}
