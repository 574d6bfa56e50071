package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"med-reminder/internal/adapters/auth/jwtclaims"
	"med-reminder/internal/adapters/capabilities/roles"
	"med-reminder/internal/adapters/medapi"
	"med-reminder/internal/adapters/notify/desktop"
	"med-reminder/internal/adapters/notify/push"
	"med-reminder/internal/adapters/notify/telegram"
	"med-reminder/internal/adapters/osm"
	"med-reminder/internal/adapters/storage/jsonfile"
	"med-reminder/internal/adapters/storage/memory"
	pg "med-reminder/internal/adapters/storage/postgres"
	rds "med-reminder/internal/adapters/storage/rediskv"
	"med-reminder/internal/adapters/storage/sqlite"
	"med-reminder/internal/domain/account"
	"med-reminder/internal/domain/admin"
	"med-reminder/internal/domain/assistant"
	"med-reminder/internal/domain/medicines"
	"med-reminder/internal/domain/pharmacies"
	"med-reminder/internal/domain/reminders"
	"med-reminder/internal/domain/sideeffects"
	"med-reminder/internal/domain/tracker"
	"med-reminder/internal/platform/config"
	"med-reminder/internal/platform/logger"
	"med-reminder/internal/ports/auth"
	"med-reminder/internal/ports/kv"
	"med-reminder/internal/router"
)

// @title Med Reminder API
// @version 1.0
// @description API local del recordatorio de medicamentos.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Sync() }()
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	// Sesión + cliente del backend. Un 401 borra el token guardado.
	session := account.NewSession(store, log)
	session.Load(ctx)

	client, err := medapi.NewClient(
		medapi.Config{
			BaseURL:   cfg.BackendURL,
			Timeout:   cfg.BackendTimeout(),
			UserAgent: cfg.AppName,
		},
		medapi.WithToken(router.BackendToken(session)),
		medapi.WithUnauthorizedHook(session.Clear),
		medapi.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("backend client: %w", err)
	}

	// Sin backend: medicamentos en memoria y verifier nil (modo dev con X-Debug-User-ID).
	var (
		medRepo  medicines.Repository = client
		catalog  medicines.Catalog    = client
		verifier auth.AuthVerifier
	)
	if client.IsConfigured() {
		verifier = jwtclaims.NewVerifier(cfg.JWTSecret)
	} else {
		log.Warn("BACKEND_URL not set, running in dev mode with in-memory medicines", nil)
		dev := memory.NewMedicineRepo(memory.DevCatalog()...)
		medRepo, catalog = dev, dev
	}

	// Services por módulo
	medsSvc := medicines.NewService(medRepo, catalog, medicines.Options{
		SearchDebounce: cfg.SearchDebounce(),
		CatalogTTL:     cfg.CatalogTTL(),
		Logger:         log,
	})
	if session.Token(ctx) != "" || !client.IsConfigured() {
		if _, err := medsSvc.Refresh(ctx); err != nil {
			log.Warn("initial medicine load failed", map[string]any{"error": err})
		}
	}

	trk := tracker.NewStore(store, log)
	trk.Load(ctx)

	var watcher *reminders.Watcher
	notifier := reminders.NewMulti(log)
	stopSinks := addNotifiers(ctx, cfg, notifier, func(ctx context.Context, alertKey string) error {
		_, err := watcher.Take(ctx, alertKey)
		return err
	}, log)
	defer stopSinks()

	watcher = reminders.NewWatcher(medsSvc, trk, notifier, log, reminders.WatcherConfig{
		AlarmRepeat: cfg.AlarmRepeat(),
		Scope:       reminders.KeyScope(cfg.AlertKeyScope),
		Location:    loc,
	})
	advisor := reminders.NewAdvisor(client, medsSvc, trk, log, reminders.AdvisorConfig{
		Threshold: cfg.LateDoseThreshold(),
		Location:  loc,
	})

	accountSvc := account.NewService(client, session, log)

	geo, err := osm.NewNominatim(osm.NominatimConfig{BaseURL: cfg.NominatimURL, UserAgent: cfg.OSMUserAgent})
	if err != nil {
		return fmt.Errorf("nominatim: %w", err)
	}
	poi, err := osm.NewOverpass(osm.OverpassConfig{URL: cfg.OverpassURL, UserAgent: cfg.OSMUserAgent})
	if err != nil {
		return fmt.Errorf("overpass: %w", err)
	}

	jobs, err := reminders.StartJobs(ctx, watcher, medsSvc, reminders.RefreshFunc(func(ctx context.Context) error {
		if client.IsConfigured() && session.Token(ctx) == "" {
			return nil
		}
		_, err := medsSvc.Refresh(ctx)
		return err
	}), notifier, log, reminders.JobsConfig{
		PollInterval:    cfg.PollInterval(),
		RefreshInterval: time.Duration(cfg.MedicineRefreshMinutes) * time.Minute,
		Location:        loc,
	})
	if err != nil {
		return err
	}
	defer jobs.Stop()
	defer watcher.Stop()

	r := router.NewRouter(router.Options{
		AuthVerifier:      verifier,
		Capabilities:      roles.NewResolver(verifier == nil),
		Logger:            log,
		Location:          loc,
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,

		Account:     accountSvc,
		Medicines:   medsSvc,
		Tracker:     trk,
		Watcher:     watcher,
		Advisor:     advisor,
		Assistant:   assistant.NewService(client, medsSvc, accountSvc, log),
		Pharmacies:  pharmacies.NewService(geo, poi, pharmacies.Options{DefaultRadius: cfg.PharmacyRadiusMeters, Logger: log}),
		SideEffects: sideeffects.NewService(store, log),
		Admin:       admin.NewService(client, log),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env, "storage": cfg.StorageDriver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore elige el almacenamiento según STORAGE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (kv.Store, func(), error) {
	noop := func() {}
	switch cfg.StorageDriver {
	case "memory":
		return memory.NewKV(), noop, nil
	case "postgres":
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		s := pg.NewKVStore(db)
		if err := s.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("postgres migrate: %w", err)
		}
		return s, func() { _ = db.Close() }, nil
	case "sqlite":
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "redis":
		s, err := rds.Open(ctx, rds.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		s, err := jsonfile.Open(cfg.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using file storage", map[string]any{"dir": s.Dir()})
		return s, noop, nil
	}
}

// addNotifiers registra los canales configurados. Un canal que no arranca se
// loguea y se saltea: el resto sigue alertando.
func addNotifiers(ctx context.Context, cfg *config.Config, m *reminders.Multi, take telegram.TakeFunc, log logger.Logger) func() {
	stop := func() {}

	if cfg.DesktopAlerts {
		m.Add("desktop", desktop.New(""))
	}

	if cfg.TelegramToken != "" {
		tg, err := telegram.New(telegram.Config{Token: cfg.TelegramToken, ChatID: cfg.TelegramChatID}, take, log)
		if err != nil {
			log.Error("telegram notifier disabled", map[string]any{"error": err})
		} else {
			tg.Start()
			stop = tg.Stop
			m.Add("telegram", tg)
		}
	}

	if cfg.FCMCredentialsFile != "" && cfg.FCMDeviceToken != "" {
		p, err := push.NewFCM(ctx, cfg.FCMCredentialsFile, cfg.FCMDeviceToken, log)
		if err != nil {
			log.Error("push notifier disabled", map[string]any{"error": err})
		} else {
			m.Add("push", p)
		}
	}

	if m.Len() == 0 {
		log.Warn("no alert channels configured, alerts only visible through /alerts", nil)
	}
	return stop
}
