package admin

import (
	"github.com/766b/chi-prometheus"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"connector-service/docs"
	"connector-service/internal/connector"
	"connector-service/internal/registry"
	"connector-service/internal/webhook"
)

// RouterConfig holds everything NewRouter needs to wire the admin mux,
// generalized from the teacher's reference pkg/server/router.New plus
// internal/app.RouterConfig shape.
type RouterConfig struct {
	Logger       *zap.Logger
	AllowOrigins []string
	Reloader     *Reloader
	Registry     *registry.Registry
	Connectors   connector.Connectors
	Dispatcher   *webhook.Dispatcher
	Secrets      webhookSecrets
	MaxRetries   int
	Checks       []func() error
	SwaggerHost  string
}

// NewRouter builds the secondary admin mux: health/readiness probes,
// Prometheus metrics, Swagger docs, webhook ingress, and the
// JWT-protected config-reload endpoint (spec §10.3).
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(chiprometheus.NewMiddleware("connector_admin"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowOrigins,
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	ready := newReadiness(cfg.Checks...)
	r.Get("/healthz", ready.healthz)
	r.Get("/readyz", ready.readyz)

	r.Handle("/metrics", metricsHandler())

	docs.SwaggerInfo.Host = cfg.SwaggerHost
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	hook := &webhookHandler{
		dispatcher: cfg.Dispatcher,
		registry:   cfg.Registry,
		connectors: cfg.Connectors,
		secrets:    cfg.Secrets,
		maxRetries: cfg.MaxRetries,
	}
	r.Post("/webhooks/{connector}", hook.ServeHTTP)

	verifier := newTokenVerifier(cfg.Reloader.Current().Admin.JWTSecret)
	r.Group(func(r chi.Router) {
		r.Use(requireAdminToken(verifier))
		r.Post("/admin/config/reload", cfg.Reloader.reloadHandler)
	})

	return r
}
