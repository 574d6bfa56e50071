package sideeffects

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"med-reminder/internal/platform/logger"
	"med-reminder/internal/ports/kv"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("side effect not found")
)

const maxDescription = 1000

// Service es el diario de efectos secundarios. Se guarda completo como un
// array JSON bajo una key fija del almacenamiento del dispositivo.
type Service struct {
	kv  kv.Store
	log logger.Logger
	now func() time.Time

	mu sync.Mutex
}

func NewService(store kv.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{kv: store, log: log.With(map[string]any{"component": "sideeffects"}), now: time.Now}
}

// List devuelve las entradas, la más reciente primero.
func (s *Service) List(ctx context.Context) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.load(ctx)
	sortNewestFirst(out)
	return out
}

func (s *Service) Add(ctx context.Context, in CreateInput) (Entry, error) {
	in.MedicineName = strings.TrimSpace(in.MedicineName)
	in.Description = strings.TrimSpace(in.Description)
	if in.Severity == "" {
		in.Severity = SeverityMild
	}
	if in.MedicineName == "" || in.Description == "" || len(in.Description) > maxDescription || !in.Severity.Valid() {
		return Entry{}, ErrInvalidInput
	}

	e := Entry{
		ID:           uuid.NewString(),
		MedicineID:   strings.TrimSpace(in.MedicineID),
		MedicineName: in.MedicineName,
		Description:  in.Description,
		Severity:     in.Severity,
		RecordedAt:   s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list := append(s.load(ctx), e)
	if err := s.save(ctx, list); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load(ctx)
	out := list[:0]
	found := false
	for _, e := range list {
		if e.ID == id {
			found = true
			continue
		}
		out = append(out, e)
	}
	if !found {
		return ErrNotFound
	}
	return s.save(ctx, out)
}

// load: datos corruptos o ausentes => lista vacía.
func (s *Service) load(ctx context.Context) []Entry {
	raw, err := s.kv.Get(ctx, kv.KeySideEffects)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.Warn("could not read side effects", map[string]any{"error": err})
		}
		return []Entry{}
	}
	var list []Entry
	if err := json.Unmarshal(raw, &list); err != nil {
		s.log.Warn("discarding corrupt side effects journal", map[string]any{"error": err})
		return []Entry{}
	}
	if list == nil {
		list = []Entry{}
	}
	return list
}

func (s *Service) save(ctx context.Context, list []Entry) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, kv.KeySideEffects, raw); err != nil {
		s.log.Error("could not persist side effects", map[string]any{"error": err})
		return err
	}
	return nil
}

func sortNewestFirst(list []Entry) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].RecordedAt.After(list[j].RecordedAt) })
}
