package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	identityhandler "fayda/internal/identity/handler"
	"fayda/internal/platform/metrics"
	"fayda/internal/platform/middleware"
	"fayda/pkg/platform/httputil"
	"fayda/pkg/platform/middleware/metadata"
	"fayda/pkg/platform/middleware/requesttime"
	"fayda/pkg/requestcontext"
)

// healthTimeout bounds the backend ping made by /health.
const healthTimeout = 2 * time.Second

// HealthChecker is implemented by every registry store.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Backend() string
}

// Deps carries everything the router mounts. Gatherer defaults to the
// Prometheus default registry.
type Deps struct {
	Identity *identityhandler.Handler
	Health   HealthChecker
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// NewRouter wires the public endpoints behind the shared middleware chain.
// The handler layer stays thin and delegates to domain services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger, deps.Metrics))

	deps.Identity.Register(r)
	r.Get("/health", healthHandler(deps.Health, deps.Logger))

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}

type healthResponse struct {
	Status   string `json:"status"`
	Registry string `json:"registry"`
}

func healthHandler(checker HealthChecker, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Registry: checker.Backend()}
		if err := checker.Ping(ctx); err != nil {
			logger.WarnContext(ctx, "registry health check failed",
				"request_id", requestcontext.RequestID(ctx),
				"backend", checker.Backend(),
				"error", err,
			)
			resp.Status = "degraded"
			httputil.WriteJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}
