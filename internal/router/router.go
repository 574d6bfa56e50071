package router

import (
	"context"
	"net/http"
	"time"

	"med-reminder/internal/adapters/capabilities/roles"
	"med-reminder/internal/domain/account"
	"med-reminder/internal/domain/admin"
	"med-reminder/internal/domain/assistant"
	"med-reminder/internal/domain/health"
	"med-reminder/internal/domain/medicines"
	"med-reminder/internal/domain/pharmacies"
	"med-reminder/internal/domain/reminders"
	"med-reminder/internal/domain/sideeffects"
	"med-reminder/internal/domain/tracker"
	"med-reminder/internal/middleware"
	"med-reminder/internal/platform/logger"
	"med-reminder/internal/ports/auth"
	"med-reminder/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "med-reminder/docs"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si es nil se usa la tabla estática por rol (allowAll en modo dev).
	Capabilities capabilities.Resolver

	Logger            logger.Logger
	Location          *time.Location
	MaxRequestsPerMin int

	// Servicios por módulo. Un servicio nil no monta sus rutas.
	Account     *account.Service
	Medicines   *medicines.Service
	Tracker     *tracker.Store
	Watcher     *reminders.Watcher
	Advisor     *reminders.Advisor
	Assistant   *assistant.Service
	Pharmacies  *pharmacies.Service
	SideEffects *sideeffects.Service
	Admin       *admin.Service
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	caps := opts.Capabilities
	if caps == nil {
		caps = roles.NewResolver(opts.AuthVerifier == nil)
	}

	var session middleware.TokenSource
	if opts.Account != nil {
		session = opts.Account.Session().Token
	}

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(opts.Logger))
	r.Use(middleware.RateLimit(opts.MaxRequestsPerMin, opts.Logger))

	r.Use(middleware.AuthContext(opts.AuthVerifier, session))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rutas por módulo
	health.RegisterRoutes(r)

	if opts.Account != nil {
		account.RegisterRoutes(r, opts.Account)
	}
	if opts.Medicines != nil {
		medicines.RegisterRoutes(r, opts.Medicines, caps)
	}
	if opts.Tracker != nil && opts.Medicines != nil {
		tracker.RegisterRoutes(r, tracker.Deps{
			Store:    opts.Tracker,
			Meds:     opts.Medicines,
			Location: opts.Location,
		})
	}
	if opts.Watcher != nil && opts.Advisor != nil {
		reminders.RegisterRoutes(r, opts.Watcher, opts.Advisor)
	}
	if opts.Assistant != nil {
		assistant.RegisterRoutes(r, opts.Assistant)
	}
	if opts.Pharmacies != nil {
		pharmacies.RegisterRoutes(r, opts.Pharmacies)
	}
	if opts.SideEffects != nil {
		sideeffects.RegisterRoutes(r, opts.SideEffects)
	}
	if opts.Admin != nil {
		admin.RegisterRoutes(r, opts.Admin, caps)
	}

	return r
}

// BackendToken resuelve el Bearer para el backend: el token del request si vino
// en el header, si no el de la sesión guardada.
func BackendToken(session *account.Session) func(ctx context.Context) string {
	return func(ctx context.Context) string {
		if c, ok := middleware.GetClaims(ctx); ok && c.Token != "" {
			return c.Token
		}
		if session == nil {
			return ""
		}
		return session.Token(ctx)
	}
}
