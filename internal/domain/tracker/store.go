package tracker

import (
	"context"
	"errors"
	"sync"

	"med-reminder/internal/domain/schedule"
	"med-reminder/internal/platform/logger"
	"med-reminder/internal/ports/kv"
)

// Listener recibe cada acción aplicada con el estado resultante.
type Listener func(a Action, s State)

// Store es el contenedor de estado. El ledger de tomas es un cache write-through:
// cada toggle exitoso reescribe el mapa completo en kv; si la escritura falla se
// loguea y el estado en memoria se mantiene.
type Store struct {
	kv  kv.Store
	log logger.Logger

	mu        sync.Mutex
	state     State
	listeners []Listener
}

func NewStore(store kv.Store, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		kv:    store,
		log:   log.With(map[string]any{"component": "tracker"}),
		state: NewState(),
	}
}

// Load lee el ledger guardado. Datos corruptos o ausentes => ledger vacío (se loguea).
func (s *Store) Load(ctx context.Context) {
	completions := map[string]bool{}

	raw, err := s.kv.Get(ctx, kv.KeyCompletions)
	switch {
	case errors.Is(err, kv.ErrNotFound):
	case err != nil:
		s.log.Warn("ledger read failed, starting empty", map[string]any{"error": err})
	default:
		decoded, err := DecodeLedger(raw)
		if err != nil {
			s.log.Warn("ledger corrupt, starting empty", map[string]any{"error": err})
		} else {
			completions = decoded
		}
	}

	_, _ = s.Dispatch(LedgerLoaded{Completions: completions})
	s.log.Info("ledger loaded", map[string]any{"entries": len(completions)})
}

// Dispatch aplica la acción sin efectos de I/O.
func (s *Store) Dispatch(a Action) (State, error) {
	s.mu.Lock()
	next, err := Reduce(s.state, a)
	if err != nil {
		s.mu.Unlock()
		return s.state.clone(), err
	}
	s.state = next
	listeners := append([]Listener(nil), s.listeners...)
	snapshot := next.clone()
	s.mu.Unlock()

	for _, l := range listeners {
		l(a, snapshot)
	}
	return snapshot, nil
}

// Subscribe registra un listener (p.ej. logging de auditoría o push a la UI).
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// State devuelve una copia del estado actual.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *Store) IsCompleted(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Completions[key]
}

// ToggleCompleted marca la toma como tomada y persiste el ledger completo.
// Ya tomada => ErrAlreadyCompleted sin escribir. Otra escritura en vuelo => ErrBusy.
func (s *Store) ToggleCompleted(ctx context.Context, o schedule.Occurrence) error {
	state, err := s.Dispatch(ToggleCompletion{Key: o.Key()})
	if err != nil {
		return err
	}
	defer func() { _, _ = s.Dispatch(Persisted{}) }()

	b, err := EncodeLedger(state.Completions)
	if err != nil {
		s.log.Error("ledger encode failed", map[string]any{"error": err})
		return nil
	}
	if err := s.kv.Set(ctx, kv.KeyCompletions, b); err != nil {
		s.log.Warn("ledger write failed, keeping in-memory state", map[string]any{
			"error": err,
			"key":   o.Key(),
		})
		return nil
	}

	s.log.Debug("dose marked as taken", map[string]any{"key": o.Key(), "medicine_id": o.MedicineID})
	return nil
}
