package metrics

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kozmoai/site/pkg/kz/config"
	"github.com/kozmoai/site/pkg/kz/logger"
)

var (
	BlogSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kozmo_blog_searches_total",
		Help: "Blog searches by result: all (empty query), hit or miss",
	}, []string{"result"})

	DemoRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kozmo_demo_requests_total",
		Help: "Demo request submissions by outcome: success, failed, timeout or invalid",
	}, []string{"outcome"})

	DemoRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kozmo_demo_request_duration_seconds",
		Help:    "Time spent persisting a demo request",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
	})

	OpenSurfaces = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kozmo_lead_surfaces_open",
		Help: "Lead form surfaces currently tracked",
	})
)

// Endpoint exposes the Prometheus scrape handler.
type Endpoint struct {
	cfg *config.Config
	log logger.Logger
}

func NewEndpoint(cfg *config.Config, log logger.Logger) *Endpoint {
	return &Endpoint{cfg: cfg, log: log}
}

func (e *Endpoint) RegisterRoutes(r chi.Router) {
	if !e.cfg.Metrics.Enabled {
		return
	}
	path := e.cfg.Metrics.Path
	if path == "" {
		path = "/metrics"
	}
	e.log.Infof("Registering metrics endpoint: %s", path)
	r.Handle(path, promhttp.Handler())
}
