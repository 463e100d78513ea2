package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/athebyme/gomarket-platform/catalog-admin/docs"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/api/handlers"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/api/middleware"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/services"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/security"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

// RouterConfig зависимости маршрутизатора
type RouterConfig struct {
	Filter   services.FilterServiceInterface
	Bulk     services.BulkEditServiceInterface
	Taxonomy services.TaxonomyServiceInterface
	// Journal nil, если журнал правок выключен
	Journal services.JournalServiceInterface
	Auth    security.AuthServiceInterface
	Logger  interfaces.LoggerPort

	Version            string
	HealthChecks       map[string]handlers.Pinger
	CORSAllowedOrigins []string
	RequestTimeout     time.Duration
	MetricsEnabled     bool
	MetricsEndpoint    string
}

// SetupRouter настраивает маршрутизатор
func SetupRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	// Глобальные middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.SecurityHeaders)
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics)
	}

	health := handlers.NewHealthHandler(cfg.Version, cfg.HealthChecks)
	r.Get("/health", health.Health)
	r.Head("/health", health.Head)

	if cfg.MetricsEnabled {
		endpoint := cfg.MetricsEndpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.Handle(endpoint, promhttp.Handler())
	}

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
		r.Use(middleware.Auth(cfg.Auth, cfg.Logger))

		productHandler := handlers.NewProductHandler(cfg.Filter, cfg.Bulk, cfg.Logger)

		// Маршруты для товаров
		r.Route("/products", func(r chi.Router) {
			r.Post("/preview", productHandler.Preview)

			r.Route("/bulk", func(r chi.Router) {
				r.Post("/", productHandler.Bulk)
				r.Post("/title", productHandler.BulkTitle)
				r.Post("/status", productHandler.BulkStatus)
				r.Post("/product-type", productHandler.BulkProductType)
				r.Post("/tags", productHandler.BulkTags)
				r.Post("/sku", productHandler.BulkSKU)
				r.Post("/weight", productHandler.BulkWeight)
			})
		})

		taxonomyHandler := handlers.NewTaxonomyHandler(cfg.Taxonomy)
		r.Route("/taxonomy", func(r chi.Router) {
			r.Get("/tree", taxonomyHandler.Tree)
			r.Get("/options", taxonomyHandler.Options)
		})

		if cfg.Journal != nil {
			auditHandler := handlers.NewAuditHandler(cfg.Journal, cfg.Logger)
			r.Route("/audit/batches", func(r chi.Router) {
				r.Get("/", auditHandler.List)
				r.Get("/{id}", auditHandler.Get)
			})
		}
	})

	return r
}
