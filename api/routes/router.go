package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mitraternak/kandang-backend/api/controllers"
	"github.com/mitraternak/kandang-backend/api/middleware"
	inventorysvc "github.com/mitraternak/kandang-backend/internal/inventory"
	kandangsvc "github.com/mitraternak/kandang-backend/internal/kandang"
	"github.com/mitraternak/kandang-backend/pkg/config"
	"github.com/mitraternak/kandang-backend/pkg/logger"
	"github.com/mitraternak/kandang-backend/pkg/metrics"
	pkgredis "github.com/mitraternak/kandang-backend/pkg/redis"
)

// Dependencies collects everything the router wires together.
type Dependencies struct {
	Config           *config.Config
	Logger           *logger.Logger
	InventoryService inventorysvc.Service
	KandangService   kandangsvc.Service
	IdempotencyStore pkgredis.IdempotencyStore
	HTTPMetrics      *metrics.HTTPMetrics
	MetricsRegistry  *prometheus.Registry
	ReadyChecks      map[string]controllers.Pinger
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.ReadyChecks))
	})

	if deps.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(deps.IdempotencyStore, logg))

		r.Route("/inventory", func(r chi.Router) {
			r.Post("/", controllers.CreateInventory(deps.InventoryService, cfg.Media, logg))
			r.Get("/kandang/{id}", controllers.ListInventoryByKandang(deps.InventoryService, logg))
			r.Get("/{id}", controllers.InventoryDetail(deps.InventoryService, logg))
			r.Get("/{id}/logs", controllers.InventoryHistory(deps.InventoryService, logg))
			r.Put("/{id}", controllers.UpdateInventory(deps.InventoryService, cfg.Media, logg))
			r.Delete("/{id}", controllers.DeleteInventory(deps.InventoryService, logg))
		})

		r.Route("/kandang", func(r chi.Router) {
			r.Post("/", controllers.CreateKandang(deps.KandangService, logg))
			r.Get("/", controllers.ListKandang(deps.KandangService, logg))
			r.Get("/{id}", controllers.KandangDetail(deps.KandangService, logg))
			r.Put("/{id}", controllers.UpdateKandang(deps.KandangService, logg))
			r.Delete("/{id}", controllers.DeleteKandang(deps.KandangService, logg))
		})
	})

	return r
}
