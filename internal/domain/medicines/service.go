package medicines

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"med-reminder/internal/platform/debounce"
	"med-reminder/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medicine not found")
	ErrBusy         = errors.New("another medicine operation is in progress")
)

const (
	DefaultSearchDebounce = 250 * time.Millisecond
	DefaultCatalogTTL     = 5 * time.Minute
	searchLimit           = 20
)

type Options struct {
	SearchDebounce time.Duration
	CatalogTTL     time.Duration
	Logger         logger.Logger
}

// Service mantiene la copia en memoria de los medicamentos del usuario
// y orquesta alta/baja contra el backend.
type Service struct {
	repo    Repository
	catalog Catalog
	log     logger.Logger
	now     func() time.Time

	search     *debounce.Debouncer
	catalogTTL time.Duration

	mu      sync.RWMutex
	current []Medicine

	// Guard contra doble envío (doble tap en "agregar"/"eliminar").
	processing atomic.Bool

	catMu      sync.Mutex
	catCache   []CatalogEntry
	catFetched time.Time
}

func NewService(repo Repository, catalog Catalog, opts Options) *Service {
	if opts.SearchDebounce <= 0 {
		opts.SearchDebounce = DefaultSearchDebounce
	}
	if opts.CatalogTTL <= 0 {
		opts.CatalogTTL = DefaultCatalogTTL
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Service{
		repo:       repo,
		catalog:    catalog,
		log:        opts.Logger.With(map[string]any{"component": "medicines"}),
		now:        time.Now,
		search:     debounce.New(opts.SearchDebounce),
		catalogTTL: opts.CatalogTTL,
	}
}

// Refresh trae la lista del backend y reemplaza la copia en memoria.
func (s *Service) Refresh(ctx context.Context) ([]Medicine, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.current = cloneAll(list)
	s.mu.Unlock()
	return cloneAll(list), nil
}

// Current devuelve la copia en memoria sin I/O (la usa el watcher cada 5s).
func (s *Service) Current() []Medicine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.current)
}

// Get busca en la copia en memoria.
func (s *Service) Get(id string) (Medicine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.current {
		if m.ID == id {
			return clone(m), nil
		}
	}
	return Medicine{}, ErrNotFound
}

// IdentifyInput es el paso 1 del alta: qué medicamento.
type IdentifyInput struct {
	Name string
	Type Type
	Dose Dose
}

// ScheduleInput es el paso 2 del alta: cuándo.
type ScheduleInput struct {
	SelectedDays []Weekday
	Times        []TimeInput
}

type TimeInput struct {
	Time   string
	Dosage string
}

// ValidateIdentify valida el paso 1 por separado (el cliente lo llama antes de avanzar).
func ValidateIdentify(in IdentifyInput) (IdentifyInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || len(in.Name) > 120 {
		return IdentifyInput{}, ErrInvalidInput
	}
	if !in.Type.Valid() {
		return IdentifyInput{}, ErrInvalidInput
	}
	if in.Dose.Amount <= 0 || !in.Dose.Unit.Valid() {
		return IdentifyInput{}, ErrInvalidInput
	}
	return in, nil
}

// ValidateSchedule valida el paso 2 y devuelve el Schedule normalizado.
func ValidateSchedule(in ScheduleInput) (*Schedule, error) {
	if len(in.SelectedDays) == 0 {
		return nil, ErrInvalidInput
	}

	seen := map[Weekday]bool{}
	days := make([]Weekday, 0, len(in.SelectedDays))
	for _, d := range in.SelectedDays {
		d = ParseWeekday(string(d))
		if !d.Valid() {
			return nil, ErrInvalidInput
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}

	times := make([]ScheduleTime, 0, len(in.Times))
	seenTimes := map[string]bool{}
	for _, t := range in.Times {
		clock, err := NormalizeClock(t.Time)
		if err != nil {
			return nil, ErrInvalidInput
		}
		if seenTimes[clock] {
			return nil, ErrInvalidInput
		}
		seenTimes[clock] = true
		times = append(times, ScheduleTime{
			Time:   clock,
			Dosage: strings.TrimSpace(t.Dosage),
			ID:     uuid.NewString(),
		})
	}

	return &Schedule{SelectedDays: days, Times: times}, nil
}

// Add ejecuta el alta completa (identificar + programar). Un segundo Add
// mientras hay otro en vuelo devuelve ErrBusy.
func (s *Service) Add(ctx context.Context, id IdentifyInput, sched ScheduleInput) (Medicine, error) {
	ident, err := ValidateIdentify(id)
	if err != nil {
		return Medicine{}, err
	}
	schedule, err := ValidateSchedule(sched)
	if err != nil {
		return Medicine{}, err
	}

	if !s.processing.CompareAndSwap(false, true) {
		return Medicine{}, ErrBusy
	}
	defer s.processing.Store(false)

	created, err := s.repo.Add(ctx, Medicine{
		Name:     ident.Name,
		Type:     ident.Type,
		Dose:     ident.Dose,
		Schedule: schedule,
	})
	if err != nil {
		return Medicine{}, err
	}

	s.mu.Lock()
	s.current = append(s.current, clone(created))
	s.mu.Unlock()

	s.log.Info("medicine added", map[string]any{"medicine_id": created.ID})
	return created, nil
}

func (s *Service) Remove(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	if !s.processing.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.processing.Store(false)

	if err := s.repo.Remove(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	out := s.current[:0]
	for _, m := range s.current {
		if m.ID != id {
			out = append(out, m)
		}
	}
	s.current = out
	s.mu.Unlock()

	s.log.Info("medicine removed", map[string]any{"medicine_id": id})
	return nil
}

// Search es la búsqueda "mientras escribe" sobre el catálogo. session identifica
// el input del cliente: una búsqueda nueva para la misma session cancela la anterior.
func (s *Service) Search(ctx context.Context, session, query string) ([]CatalogEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		s.search.Cancel(session)
		return []CatalogEntry{}, nil
	}

	if err := s.search.Wait(ctx, session); err != nil {
		return nil, err
	}

	entries, err := s.catalogEntries(ctx)
	if err != nil {
		return nil, err
	}
	return filterCatalog(entries, query, searchLimit), nil
}

// CancelSearch descarta la búsqueda pendiente (el modal se cerró).
func (s *Service) CancelSearch(session string) { s.search.Cancel(session) }

func (s *Service) ListCatalog(ctx context.Context) ([]CatalogEntry, error) {
	return s.catalogEntries(ctx)
}

func (s *Service) CreateCatalog(ctx context.Context, e CatalogEntry) (CatalogEntry, error) {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return CatalogEntry{}, ErrInvalidInput
	}
	created, err := s.catalog.CreateCatalog(ctx, e)
	if err != nil {
		return CatalogEntry{}, err
	}
	s.invalidateCatalog()
	return created, nil
}

func (s *Service) DeleteCatalog(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	if err := s.catalog.DeleteCatalog(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog()
	return nil
}

func (s *Service) catalogEntries(ctx context.Context) ([]CatalogEntry, error) {
	s.catMu.Lock()
	defer s.catMu.Unlock()

	if s.catCache != nil && s.now().Sub(s.catFetched) < s.catalogTTL {
		return append([]CatalogEntry(nil), s.catCache...), nil
	}

	entries, err := s.catalog.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	s.catCache = append([]CatalogEntry{}, entries...)
	s.catFetched = s.now()
	return append([]CatalogEntry(nil), entries...), nil
}

func (s *Service) invalidateCatalog() {
	s.catMu.Lock()
	s.catCache = nil
	s.catMu.Unlock()
}

// filterCatalog: match case-insensitive; prefijos primero, después substrings, luego alfabético.
func filterCatalog(entries []CatalogEntry, query string, limit int) []CatalogEntry {
	q := strings.ToLower(query)

	type hit struct {
		e      CatalogEntry
		prefix bool
	}
	hits := make([]hit, 0)
	for _, e := range entries {
		name := strings.ToLower(e.Name)
		switch {
		case strings.HasPrefix(name, q):
			hits = append(hits, hit{e: e, prefix: true})
		case strings.Contains(name, q):
			hits = append(hits, hit{e: e})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].prefix != hits[j].prefix {
			return hits[i].prefix
		}
		return strings.ToLower(hits[i].e.Name) < strings.ToLower(hits[j].e.Name)
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]CatalogEntry, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.e)
	}
	return out
}

func clone(m Medicine) Medicine {
	if m.Schedule != nil {
		sc := *m.Schedule
		sc.SelectedDays = append([]Weekday(nil), m.Schedule.SelectedDays...)
		sc.Times = append([]ScheduleTime(nil), m.Schedule.Times...)
		m.Schedule = &sc
	}
	return m
}

func cloneAll(list []Medicine) []Medicine {
	out := make([]Medicine, 0, len(list))
	for _, m := range list {
		out = append(out, clone(m))
	}
	return out
}
