package reminders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"med-reminder/internal/domain/schedule"
	"med-reminder/internal/domain/tracker"
	"med-reminder/internal/platform/logger"
)

const DefaultLateThreshold = 2 * time.Hour

var (
	ErrDoseNotFound = errors.New("dose not scheduled today")
	ErrNotOverdue   = errors.New("dose is not overdue yet")
	ErrAlreadyTaken = errors.New("dose already taken")
)

// Asker manda una pregunta en lenguaje natural al chat del backend.
type Asker interface {
	SendMessage(ctx context.Context, message string) (string, error)
}

type AdviceSource string

const (
	SourceAssistant AdviceSource = "assistant"
	SourceFallback  AdviceSource = "fallback"
)

type Advice struct {
	MedicineID     string       `json:"medicine_id"`
	Time           string       `json:"time"`
	ElapsedMinutes int          `json:"elapsed_minutes"`
	Question       string       `json:"question"`
	Reply          string       `json:"reply"`
	Source         AdviceSource `json:"source"`
	// SafeToTake solo lo completa la heurística local.
	SafeToTake *bool     `json:"safe_to_take,omitempty"`
	AskedAt    time.Time `json:"asked_at"`
	Cached     bool      `json:"cached"`
}

type AdvisorConfig struct {
	Threshold time.Duration
	Location  *time.Location
}

// Advisor responde "se me pasó la hora, ¿la tomo igual?". Una consulta por
// medicamento por sesión; repetir devuelve la respuesta guardada.
type Advisor struct {
	asker Asker
	meds  tracker.MedicineSource
	store *tracker.Store
	log   logger.Logger
	now   func() time.Time
	cfg   AdvisorConfig

	mu   sync.Mutex
	sent map[string]Advice

	// inflight reserva el medicamento mientras la consulta está en curso.
	inflight map[string]chan struct{}
}

func NewAdvisor(asker Asker, meds tracker.MedicineSource, store *tracker.Store, log logger.Logger, cfg AdvisorConfig) *Advisor {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultLateThreshold
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Advisor{
		asker: asker,
		meds:  meds,
		store: store,
		log:   log.With(map[string]any{"component": "advisor"}),
		now:   time.Now,
		cfg:   cfg,
		sent:  map[string]Advice{},

		inflight: map[string]chan struct{}{},
	}
}

func (a *Advisor) Advise(ctx context.Context, medicineID string, timeIndex int) (Advice, error) {
	now := a.now().In(a.cfg.Location)

	o, ok := schedule.Find(a.meds.Current(), medicineID, timeIndex, now, a.store.IsCompleted)
	if !ok {
		return Advice{}, ErrDoseNotFound
	}
	if o.Completed {
		return Advice{}, ErrAlreadyTaken
	}
	schedMin, err := o.Minutes()
	if err != nil {
		return Advice{}, ErrDoseNotFound
	}
	elapsed := now.Hour()*60 + now.Minute() - schedMin
	if elapsed <= 0 {
		return Advice{}, ErrNotOverdue
	}

	a.mu.Lock()
	for {
		if prev, ok := a.sent[medicineID]; ok {
			a.mu.Unlock()
			prev.Cached = true
			return prev, nil
		}
		wait, busy := a.inflight[medicineID]
		if !busy {
			break
		}
		a.mu.Unlock()
		select {
		case <-wait:
		case <-ctx.Done():
			return Advice{}, ctx.Err()
		}
		a.mu.Lock()
	}
	done := make(chan struct{})
	a.inflight[medicineID] = done
	a.mu.Unlock()

	question := Question(o, now)
	adv := Advice{
		MedicineID:     medicineID,
		Time:           o.Time,
		ElapsedMinutes: elapsed,
		Question:       question,
		AskedAt:        now,
	}

	reply, err := a.ask(ctx, question)
	if err != nil {
		a.log.Warn("assistant unavailable, using fallback advice", map[string]any{"medicine_id": medicineID, "error": err})
		safe, text := Fallback(o.MedicineName, time.Duration(elapsed)*time.Minute, a.cfg.Threshold)
		adv.Reply = text
		adv.Source = SourceFallback
		adv.SafeToTake = &safe
	} else {
		adv.Reply = reply
		adv.Source = SourceAssistant
	}

	a.mu.Lock()
	a.sent[medicineID] = adv
	delete(a.inflight, medicineID)
	a.mu.Unlock()
	close(done)
	return adv, nil
}

// Sent indica si ya se consultó por este medicamento en la sesión.
func (a *Advisor) Sent(medicineID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.sent[medicineID]
	return ok
}

func (a *Advisor) ask(ctx context.Context, question string) (string, error) {
	if a.asker == nil {
		return "", errors.New("no assistant configured")
	}
	reply, err := a.asker.SendMessage(ctx, question)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return "", errors.New("empty assistant reply")
	}
	return reply, nil
}

// Question arma la consulta en lenguaje natural.
func Question(o schedule.Occurrence, now time.Time) string {
	dose := o.Dose.String()
	if o.Dosage != "" {
		dose += ", " + o.Dosage
	}
	return fmt.Sprintf(
		"I was supposed to take %s (%s) at %s and it is now %s. Can I still take it, or should I skip this dose?",
		o.MedicineName, dose, o.Time, now.Format("15:04"),
	)
}

// Fallback es la heurística local cuando el backend no responde:
// pasado el umbral se recomienda saltear la dosis; antes, todavía es seguro tomarla.
func Fallback(medicineName string, elapsed, threshold time.Duration) (safe bool, reply string) {
	mins := int(elapsed.Minutes())
	if elapsed > threshold {
		return false, fmt.Sprintf(
			"It has been %d minutes since your scheduled dose of %s. It is better to skip this dose and take the next one at its usual time. Do not double the dose. If in doubt, ask your doctor or pharmacist.",
			mins, medicineName,
		)
	}
	return true, fmt.Sprintf(
		"It has been %d minutes since your scheduled dose of %s. It is still safe to take it now; keep your next dose at its usual time.",
		mins, medicineName,
	)
}
