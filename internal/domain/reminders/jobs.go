package reminders

import (
	"context"
	"fmt"
	"time"

	"med-reminder/internal/domain/tracker"
	"med-reminder/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

type JobsConfig struct {
	PollInterval    time.Duration
	RefreshInterval time.Duration
	// WeeklySpec en formato cron estándar; vacío => lunes 07:00.
	WeeklySpec string
	Location   *time.Location
}

// Refresher recarga la copia en memoria de medicamentos.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshFunc adapta una función a Refresher.
type RefreshFunc func(ctx context.Context) error

func (f RefreshFunc) Refresh(ctx context.Context) error { return f(ctx) }

// Jobs agenda el watcher, el refresco de medicamentos y el resumen semanal.
type Jobs struct {
	cron *cron.Cron
	log  logger.Logger
}

// StartJobs registra y arranca los jobs. ctx cancela las alarmas en curso al apagar.
func StartJobs(ctx context.Context, w *Watcher, meds tracker.MedicineSource, refresher Refresher, notifier Notifier, log logger.Logger, cfg JobsConfig) (*Jobs, error) {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 10 * time.Minute
	}
	if cfg.WeeklySpec == "" {
		cfg.WeeklySpec = "0 7 * * 1"
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"component": "jobs"})

	w.bind(ctx)

	cl := cronLogger{log: log}
	c := cron.New(
		cron.WithLocation(cfg.Location),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	if _, err := c.AddFunc(fmt.Sprintf("@every %s", cfg.PollInterval), func() {
		w.Check(ctx)
	}); err != nil {
		return nil, fmt.Errorf("schedule watcher: %w", err)
	}

	if refresher != nil {
		if _, err := c.AddFunc(fmt.Sprintf("@every %s", cfg.RefreshInterval), func() {
			if err := refresher.Refresh(ctx); err != nil {
				log.Warn("medicine refresh failed", map[string]any{"error": err})
			}
		}); err != nil {
			return nil, fmt.Errorf("schedule refresh: %w", err)
		}
	}

	if notifier != nil {
		if _, err := c.AddFunc(cfg.WeeklySpec, weeklySummaryJob(ctx, w, meds, notifier, cfg.Location, log)); err != nil {
			return nil, fmt.Errorf("schedule weekly summary: %w", err)
		}
	}

	c.Start()
	log.Info("reminder jobs started", map[string]any{
		"poll":    cfg.PollInterval.String(),
		"refresh": cfg.RefreshInterval.String(),
		"weekly":  cfg.WeeklySpec,
	})
	return &Jobs{cron: c, log: log}, nil
}

// Stop espera a que terminen los jobs en curso.
func (j *Jobs) Stop() {
	<-j.cron.Stop().Done()
	j.log.Info("reminder jobs stopped", nil)
}

// SendWeeklySummary manda la adherencia de los 7 días previos a now.
func SendWeeklySummary(ctx context.Context, store *tracker.Store, meds tracker.MedicineSource, n Notifier, now time.Time, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	stats := tracker.Weekly(meds.Current(), now.AddDate(0, 0, -1), store.IsCompleted)
	if err := n.Notify(ctx, "Your weekly adherence", stats.Summary()); err != nil {
		log.Warn("weekly summary failed", map[string]any{"error": err})
	}
}

// weeklySummaryJob usa el reloj del watcher para fijar la semana reportada.
func weeklySummaryJob(ctx context.Context, w *Watcher, meds tracker.MedicineSource, n Notifier, loc *time.Location, log logger.Logger) func() {
	return func() {
		SendWeeklySummary(ctx, w.store, meds, n, w.now().In(loc), log)
	}
}

func (w *Watcher) bind(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.base = ctx
}

// cronLogger adapta logger.Logger a cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, kvFields(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	f := kvFields(keysAndValues)
	f["error"] = err
	l.log.Error("cron: "+msg, f)
}

func kvFields(kv []interface{}) map[string]any {
	out := map[string]any{}
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			out[k] = kv[i+1]
		}
	}
	return out
}
