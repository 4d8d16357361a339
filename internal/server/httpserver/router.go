package httpserver

import (
	"net/http"

	"github.com/yndnr/rudis-go/internal/telemetry/logger"
	"github.com/yndnr/rudis-go/internal/telemetry/metric"
)

// RouterConfig holds what the admin endpoints report on.
type RouterConfig struct {
	// KeyCounts returns live keys per type for /stats.
	KeyCounts metric.KeyCountFunc

	// ActiveConns returns open text connections for /stats.
	ActiveConns func() int

	// BitmapCapacity is the fixed size of every bitmap, in bits.
	BitmapCapacity uint

	// Ready reports whether the text server accepts commands. Nil means
	// always ready.
	Ready func() bool

	// Metrics is served at /metrics and counts admin requests. Nil uses
	// the global registry for /metrics and skips request counting.
	Metrics *metric.Registry

	// Logger for request logging.
	Logger logger.Logger
}

// NewRouter creates the admin handler with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	if cfg == nil {
		cfg = &RouterConfig{}
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	h := &handler{cfg: cfg, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /ready", h.handleReady)
	mux.HandleFunc("GET /stats", h.handleStats)
	mux.Handle("GET /metrics", h.metricsHandler())

	// Order: RequestID -> Recover -> Logging -> mux
	return Chain(mux,
		RequestID(),
		Recover(log),
		Logging(log, cfg.Metrics),
	)
}
