package reminders

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"med-reminder/internal/domain/schedule"
	"med-reminder/internal/domain/tracker"
)

type fakeAsker struct {
	reply string
	err   error
	calls int
	last  string
}

func (f *fakeAsker) SendMessage(_ context.Context, msg string) (string, error) {
	f.calls++
	f.last = msg
	return f.reply, f.err
}

func newTestAdvisor(asker Asker, now time.Time) (*Advisor, *tracker.Store) {
	store := tracker.NewStore(&memKV{}, nil)
	a := NewAdvisor(asker, staticMeds{aspirin()}, store, nil, AdvisorConfig{
		Threshold: 2 * time.Hour,
		Location:  time.UTC,
	})
	a.now = func() time.Time { return now }
	return a, store
}

func TestAdvise_UsesAssistantReply(t *testing.T) {
	asker := &fakeAsker{reply: "Yes, you can still take it."}
	a, _ := newTestAdvisor(asker, at(3, 9, 30))

	adv, err := a.Advise(context.Background(), "asp", 0)
	if err != nil {
		t.Fatalf("advise: %v", err)
	}
	if adv.Source != SourceAssistant || adv.Reply != asker.reply || adv.SafeToTake != nil {
		t.Fatalf("unexpected advice %+v", adv)
	}
	if adv.ElapsedMinutes != 90 {
		t.Fatalf("expected 90 elapsed minutes, got %d", adv.ElapsedMinutes)
	}
	if !strings.Contains(asker.last, "Aspirin") || !strings.Contains(asker.last, "08:00") || !strings.Contains(asker.last, "09:30") {
		t.Fatalf("question missing context: %q", asker.last)
	}
}

func TestAdvise_FallbackHeuristic(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		safe bool
	}{
		{"within threshold", at(3, 9, 0), true},
		{"exactly at threshold", at(3, 10, 0), true},
		{"past threshold", at(3, 10, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestAdvisor(&fakeAsker{err: errors.New("backend down")}, tt.now)
			adv, err := a.Advise(context.Background(), "asp", 0)
			if err != nil {
				t.Fatalf("advise: %v", err)
			}
			if adv.Source != SourceFallback || adv.SafeToTake == nil || *adv.SafeToTake != tt.safe {
				t.Fatalf("unexpected fallback %+v", adv)
			}
		})
	}
}

func TestAdvise_EmptyReplyFallsBack(t *testing.T) {
	a, _ := newTestAdvisor(&fakeAsker{reply: "  "}, at(3, 9, 0))
	adv, err := a.Advise(context.Background(), "asp", 0)
	if err != nil || adv.Source != SourceFallback {
		t.Fatalf("expected fallback on empty reply, got %+v err=%v", adv, err)
	}
}

func TestAdvise_OncePerMedicinePerSession(t *testing.T) {
	asker := &fakeAsker{reply: "ok"}
	a, _ := newTestAdvisor(asker, at(3, 9, 0))

	if a.Sent("asp") {
		t.Fatalf("nothing sent yet")
	}
	first, _ := a.Advise(context.Background(), "asp", 0)
	second, err := a.Advise(context.Background(), "asp", 0)
	if err != nil {
		t.Fatalf("second advise: %v", err)
	}
	if asker.calls != 1 {
		t.Fatalf("expected one backend call, got %d", asker.calls)
	}
	if !second.Cached || second.Reply != first.Reply || !a.Sent("asp") {
		t.Fatalf("expected cached reply, got %+v", second)
	}
}

// slowAsker retiene la respuesta hasta que se cierra release.
type slowAsker struct {
	calls   atomic.Int32
	release chan struct{}
}

func (s *slowAsker) SendMessage(ctx context.Context, _ string) (string, error) {
	s.calls.Add(1)
	select {
	case <-s.release:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return "take it", nil
}

func TestAdvise_ConcurrentCallsAskOnce(t *testing.T) {
	asker := &slowAsker{release: make(chan struct{})}
	a, _ := newTestAdvisor(asker, at(3, 9, 0))

	const n = 5
	var wg sync.WaitGroup
	results := make([]Advice, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = a.Advise(context.Background(), "asp", 0)
		}(i)
	}

	waitFor(t, func() bool { return asker.calls.Load() == 1 })
	time.Sleep(20 * time.Millisecond)
	close(asker.release)
	wg.Wait()

	if got := asker.calls.Load(); got != 1 {
		t.Fatalf("expected one backend call, got %d", got)
	}
	fresh := 0
	for i := range results {
		if errs[i] != nil {
			t.Fatalf("advise %d: %v", i, errs[i])
		}
		if results[i].Reply != "take it" || results[i].Source != SourceAssistant {
			t.Fatalf("advise %d: unexpected %+v", i, results[i])
		}
		if !results[i].Cached {
			fresh++
		}
	}
	if fresh != 1 {
		t.Fatalf("expected exactly one uncached advice, got %d", fresh)
	}
}

func TestAdvise_WaiterHonorsContext(t *testing.T) {
	asker := &slowAsker{release: make(chan struct{})}
	defer close(asker.release)
	a, _ := newTestAdvisor(asker, at(3, 9, 0))

	go func() { _, _ = a.Advise(context.Background(), "asp", 0) }()
	waitFor(t, func() bool { return asker.calls.Load() == 1 })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := a.Advise(ctx, "asp", 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled while waiting, got %v", err)
	}
	if asker.calls.Load() != 1 {
		t.Fatalf("waiter must not reach the backend")
	}
}

func TestAdvise_Preconditions(t *testing.T) {
	ctx := context.Background()

	a, _ := newTestAdvisor(&fakeAsker{reply: "ok"}, at(3, 8, 0))
	if _, err := a.Advise(ctx, "asp", 0); !errors.Is(err, ErrNotOverdue) {
		t.Fatalf("at due time: expected ErrNotOverdue, got %v", err)
	}

	// martes: no hay toma
	a, _ = newTestAdvisor(&fakeAsker{reply: "ok"}, at(4, 9, 0))
	if _, err := a.Advise(ctx, "asp", 0); !errors.Is(err, ErrDoseNotFound) {
		t.Fatalf("expected ErrDoseNotFound, got %v", err)
	}

	a, store := newTestAdvisor(&fakeAsker{reply: "ok"}, at(3, 9, 0))
	o := findAdvisorOcc(t, a)
	_ = store.ToggleCompleted(ctx, o)
	if _, err := a.Advise(ctx, "asp", 0); !errors.Is(err, ErrAlreadyTaken) {
		t.Fatalf("expected ErrAlreadyTaken, got %v", err)
	}
}

func TestFallback_Text(t *testing.T) {
	safe, msg := Fallback("Aspirin", 3*time.Hour, 2*time.Hour)
	if safe || !strings.Contains(msg, "skip") {
		t.Fatalf("expected skip advice, got %v %q", safe, msg)
	}
	safe, msg = Fallback("Aspirin", 30*time.Minute, 2*time.Hour)
	if !safe || !strings.Contains(msg, "still safe") {
		t.Fatalf("expected safe advice, got %v %q", safe, msg)
	}
}

func findAdvisorOcc(t *testing.T, a *Advisor) schedule.Occurrence {
	t.Helper()
	o, ok := schedule.Find(a.meds.Current(), "asp", 0, a.now(), a.store.IsCompleted)
	if !ok {
		t.Fatalf("aspirin occurrence not found")
	}
	return o
}
