package api

import (
	"log/slog"
	"net/http"

	apimw "github.com/easybiz/easybiz-api/internal/api/middleware"
	"github.com/easybiz/easybiz-api/internal/generation"
	"github.com/easybiz/easybiz-api/internal/service"
	"github.com/easybiz/easybiz-api/internal/service/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds the dependencies of the HTTP router.
type RouterConfig struct {
	ContentService service.ContentService

	// JWTService protects the generation and task routes when set.
	JWTService auth.JWTService

	// Gatherer backs the /metrics endpoint; nil disables it.
	Gatherer prometheus.Gatherer

	Logger      *slog.Logger
	ProjectName string
	Version     string
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimw.NewTraceMiddleware(cfg.Logger))
	r.Use(apimw.CORS())

	contentHandler := NewContentHandler(cfg.ContentService)
	healthHandler := NewHealthHandler(cfg.ContentService, cfg.ProjectName, cfg.Version)

	r.Get("/", healthHandler.Root)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)

		r.Group(func(r chi.Router) {
			if cfg.JWTService != nil {
				r.Use(apimw.NewAuthMiddleware(cfg.JWTService).Authenticate)
			}

			r.Post("/generate", contentHandler.Generate)
			r.Post("/generate/brand-kit", contentHandler.GenerateType(generation.TypeBrandKit))
			r.Post("/generate/social-media", contentHandler.GenerateType(generation.TypeSocialMedia))
			r.Post("/generate/website", contentHandler.GenerateType(generation.TypeWebsiteContent))
			r.Post("/generate/business-plan", contentHandler.GenerateType(generation.TypeBusinessPlan))
			r.Post("/generate/image", contentHandler.GenerateType(generation.TypeImageGeneration))

			r.Get("/task/{id}", contentHandler.GetTask)
		})
	})

	return r
}
