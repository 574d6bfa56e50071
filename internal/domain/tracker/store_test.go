package tracker

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"med-reminder/internal/domain/medicines"
	"med-reminder/internal/domain/schedule"
	"med-reminder/internal/ports/kv"
)

type fakeKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	writes  int
	failSet error
	getErr  error
	block   chan struct{}
	entered chan struct{}
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string][]byte{}} }

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value []byte) error {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.failSet != nil {
		return f.failSet
	}
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func (f *fakeKV) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func occ(medID string, idx int, date string) schedule.Occurrence {
	return schedule.Occurrence{MedicineID: medID, TimeIndex: idx, Date: date, Time: "08:00"}
}

func TestToggleCompleted_PersistsWholeLedger(t *testing.T) {
	store := newFakeKV()
	s := NewStore(store, nil)
	ctx := context.Background()

	if err := s.ToggleCompleted(ctx, occ("a", 0, "2024-06-03")); err != nil {
		t.Fatalf("toggle a: %v", err)
	}
	if err := s.ToggleCompleted(ctx, occ("b", 1, "2024-06-03")); err != nil {
		t.Fatalf("toggle b: %v", err)
	}

	saved, err := DecodeLedger(store.data[kv.KeyCompletions])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]bool{"a-0-2024-06-03": true, "b-1-2024-06-03": true}
	if !reflect.DeepEqual(saved, want) {
		t.Fatalf("saved ledger = %v, want %v", saved, want)
	}
	if s.State().Processing {
		t.Fatalf("processing flag must be cleared after write")
	}
}

func TestToggleCompleted_AlreadyCompletedIsNoop(t *testing.T) {
	store := newFakeKV()
	s := NewStore(store, nil)
	ctx := context.Background()
	o := occ("a", 0, "2024-06-03")

	if err := s.ToggleCompleted(ctx, o); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	before := s.State()
	writes := store.writes

	if err := s.ToggleCompleted(ctx, o); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
	if store.writes != writes {
		t.Fatalf("expected no persistence write, got %d extra", store.writes-writes)
	}
	if !reflect.DeepEqual(before.Completions, s.State().Completions) {
		t.Fatalf("state changed on no-op toggle")
	}
}

func TestToggleCompleted_RejectedWhileProcessing(t *testing.T) {
	store := newFakeKV()
	store.block = make(chan struct{})
	store.entered = make(chan struct{}, 1)
	s := NewStore(store, nil)

	done := make(chan error, 1)
	go func() { done <- s.ToggleCompleted(context.Background(), occ("a", 0, "2024-06-03")) }()

	select {
	case <-store.entered:
	case <-time.After(time.Second):
		t.Fatalf("first write never started")
	}

	if err := s.ToggleCompleted(context.Background(), occ("b", 0, "2024-06-03")); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if s.IsCompleted("b-0-2024-06-03") {
		t.Fatalf("rejected toggle must not change state")
	}

	close(store.block)
	if err := <-done; err != nil {
		t.Fatalf("first toggle: %v", err)
	}
}

func TestToggleCompleted_WriteFailureKeepsMemoryState(t *testing.T) {
	store := newFakeKV()
	store.failSet = errors.New("disk full")
	s := NewStore(store, nil)

	if err := s.ToggleCompleted(context.Background(), occ("a", 0, "2024-06-03")); err != nil {
		t.Fatalf("write failure must not surface, got %v", err)
	}
	if !s.IsCompleted("a-0-2024-06-03") {
		t.Fatalf("in-memory state must not roll back")
	}
	if s.State().Processing {
		t.Fatalf("processing must be cleared even on failure")
	}
}

func TestLoad_RoundTripAndCorruptData(t *testing.T) {
	store := newFakeKV()
	s := NewStore(store, nil)
	ctx := context.Background()
	_ = s.ToggleCompleted(ctx, occ("a", 0, "2024-06-03"))
	_ = s.ToggleCompleted(ctx, occ("a", 1, "2024-06-04"))

	reloaded := NewStore(store, nil)
	reloaded.Load(ctx)
	if !reflect.DeepEqual(reloaded.State().Completions, s.State().Completions) {
		t.Fatalf("round trip mismatch: %v vs %v", reloaded.State().Completions, s.State().Completions)
	}

	// Guardar lo recargado produce exactamente los mismos bytes.
	first, _ := EncodeLedger(s.State().Completions)
	second, _ := EncodeLedger(reloaded.State().Completions)
	if string(first) != string(second) {
		t.Fatalf("persistence not idempotent: %s vs %s", first, second)
	}

	store.data[kv.KeyCompletions] = []byte("{not json")
	corrupt := NewStore(store, nil)
	corrupt.Load(ctx)
	if len(corrupt.State().Completions) != 0 {
		t.Fatalf("corrupt data must load as empty ledger")
	}

	store.getErr = errors.New("io")
	broken := NewStore(store, nil)
	broken.Load(ctx)
	if len(broken.State().Completions) != 0 {
		t.Fatalf("read error must load as empty ledger")
	}
}

func TestReduce_Alerts(t *testing.T) {
	s := NewState()
	a := Alert{Key: "asp@08:00", Occurrence: occ("asp", 0, "2024-06-03")}

	s, err := Reduce(s, AlertFired{Alert: a})
	if err != nil {
		t.Fatalf("fire: %v", err)
	}
	if _, err := Reduce(s, AlertFired{Alert: a}); !errors.Is(err, ErrAlreadyFired) {
		t.Fatalf("expected ErrAlreadyFired, got %v", err)
	}

	s, _ = Reduce(s, MuteToggled{Muted: true})
	dismissed, err := Reduce(s, AlertDismissed{AlertKey: a.Key})
	if err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if dismissed.Muted {
		t.Fatalf("manual dismiss must reset mute")
	}
	if len(dismissed.Alerts) != 0 || !dismissed.Fired[a.Key] {
		t.Fatalf("dismiss must close alert but keep fired flag")
	}

	taken, _ := Reduce(s, AlertDismissed{AlertKey: a.Key, Taken: true})
	if !taken.Muted {
		t.Fatalf("taking a dose does not touch mute")
	}

	if _, err := Reduce(dismissed, AlertDismissed{AlertKey: a.Key}); !errors.Is(err, ErrNoSuchAlert) {
		t.Fatalf("expected ErrNoSuchAlert, got %v", err)
	}
}

func TestReduce_AlertFiredForTakenDose(t *testing.T) {
	o := occ("asp", 0, "2024-06-03")
	s, err := Reduce(NewState(), ToggleCompletion{Key: o.Key()})
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	s, _ = Reduce(s, Persisted{})

	a := Alert{Key: "asp@08:00", Occurrence: o}
	got, err := Reduce(s, AlertFired{Alert: a})
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
	if got.Fired[a.Key] || len(got.Alerts) != 0 {
		t.Fatalf("taken dose must not open an alert: %+v", got)
	}

	// otra fecha del mismo horario sí suena
	other := Alert{Key: "asp@08:00@2024-06-10", Occurrence: occ("asp", 0, "2024-06-10")}
	if _, err := Reduce(s, AlertFired{Alert: other}); err != nil {
		t.Fatalf("fire other day: %v", err)
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := NewState()
	next, _ := Reduce(s, ToggleCompletion{Key: "k"})
	if s.Completions["k"] || s.Processing {
		t.Fatalf("input state mutated")
	}
	if !next.Completions["k"] || !next.Processing {
		t.Fatalf("next state missing toggle")
	}
	if _, err := Reduce(s, SelectDay{Date: "03/06/2024"}); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction for bad date, got %v", err)
	}
}

func TestSubscribe_ReceivesActions(t *testing.T) {
	s := NewStore(newFakeKV(), nil)
	var got []ActionType
	s.Subscribe(func(a Action, _ State) { got = append(got, a.Type()) })

	_ = s.ToggleCompleted(context.Background(), occ("a", 0, "2024-06-03"))

	want := []ActionType{ActionToggleCompletion, ActionPersisted}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}
}

func TestWeekly(t *testing.T) {
	med := medicines.Medicine{ID: "m", Schedule: &medicines.Schedule{
		SelectedDays: []medicines.Weekday{medicines.Monday, medicines.Wednesday},
		Times:        []medicines.ScheduleTime{{Time: "08:00"}, {Time: "20:00"}},
	}}
	// Semana lunes 2024-06-03 .. domingo 2024-06-09
	end := time.Date(2024, 6, 9, 12, 0, 0, 0, time.UTC)
	done := map[string]bool{
		"m-0-2024-06-03": true,
		"m-1-2024-06-03": true,
		"m-0-2024-06-05": true,
	}

	w := Weekly([]medicines.Medicine{med}, end, func(k string) bool { return done[k] })
	if w.From != "2024-06-03" || w.To != "2024-06-09" {
		t.Fatalf("unexpected range %s..%s", w.From, w.To)
	}
	if w.Days[0].Status != DayFull || w.Days[2].Status != DayPartial || w.Days[1].Status != DayEmpty {
		t.Fatalf("unexpected statuses %+v", w.Days)
	}
	if w.FullDays != 1 || w.Percent != 50 {
		t.Fatalf("expected 1 full day (50%%), got %d (%d%%)", w.FullDays, w.Percent)
	}
	if w.Summary() == "" {
		t.Fatalf("summary should not be empty")
	}
}
