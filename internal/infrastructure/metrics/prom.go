// Package metrics expone métricas Prometheus del dashboard: peticiones HTTP entrantes
// y llamadas al backend.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "oxdashboard"

// Prom colectores registrados.
type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	UpstreamDuration *prometheus.HistogramVec
	Sessions         prometheus.GaugeFunc

	gatherer prometheus.Gatherer
}

// NewProm crea y registra los colectores en reg. sessions (opcional) informa cuántas
// sesiones hay en memoria.
func NewProm(reg *prometheus.Registry, sessions func() int) *Prom {
	p := &Prom{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		UpstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "upstream",
				Name:      "request_duration_seconds",
				Help:      "Backend API call latency by operation and outcome.",
				Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"op", "outcome"}, // outcome=ok|error
		),
		gatherer: reg,
	}
	reg.MustRegister(p.RequestsTotal, p.RequestsDuration, p.UpstreamDuration)

	if sessions != nil {
		p.Sessions = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "sessions_in_memory",
				Help:      "Browser sessions currently held in process memory.",
			},
			func() float64 { return float64(sessions()) },
		)
		reg.MustRegister(p.Sessions)
	}
	return p
}

// ObserveUpstream implementa oxapi.Observer.
func (p *Prom) ObserveUpstream(op, outcome string, d time.Duration) {
	p.UpstreamDuration.WithLabelValues(op, outcome).Observe(d.Seconds())
}

// Middleware cuenta y mide cada petición por ruta registrada.
func (p *Prom) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// la plantilla de ruta solo existe después del routing
		route := c.Route().Path
		if route == "" || (route == "/" && c.Path() != "/") {
			route = "unmatched"
		}
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		method := c.Method()
		code := strconv.Itoa(status)
		p.RequestsTotal.WithLabelValues(method, route, code).Inc()
		p.RequestsDuration.WithLabelValues(method, route, code).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler sirve /metrics.
func (p *Prom) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{}))
}
