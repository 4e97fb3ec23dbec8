// Package metrics expone contadores e histogramas Prometheus de reportes y exportaciones.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/charity-reports-api/internal/application/export"
	"github.com/jhoicas/charity-reports-api/internal/application/reporting"
)

var (
	_ reporting.Metrics = (*Prometheus)(nil)
	_ export.Metrics    = (*Prometheus)(nil)
)

const namespace = "charity_reports"

// Prometheus registro propio (no el global) para poder instanciarlo en tests.
type Prometheus struct {
	registry *prometheus.Registry

	reportsTotal    *prometheus.CounterVec
	reportDuration  *prometheus.HistogramVec
	cacheHits       *prometheus.CounterVec
	exportsTotal    *prometheus.CounterVec
	exportBytes     *prometheus.HistogramVec
	cleanupDeleted  prometheus.Counter
	cleanupFailures prometheus.Counter
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New registra todas las métricas más las del runtime de Go y del proceso.
func New() *Prometheus {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Prometheus{
		registry: reg,
		reportsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "reports_total",
			Help: "Reportes generados por tipo y resultado",
		}, []string{"report_type", "status"}),
		reportDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "report_duration_seconds",
			Help:    "Duración de la generación de reportes",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"report_type"}),
		cacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "report_cache_hits_total",
			Help: "Reportes servidos desde caché",
		}, []string{"report_type"}),
		exportsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "exports_total",
			Help: "Exportaciones por formato y resultado",
		}, []string{"format", "status"}),
		exportBytes: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "export_size_bytes",
			Help:    "Tamaño de los archivos exportados",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		}, []string{"format"}),
		cleanupDeleted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "cleanup_deleted_files_total",
			Help: "Archivos eliminados por limpieza",
		}),
		cleanupFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "cleanup_failed_files_total",
			Help: "Archivos que no pudieron eliminarse",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "Peticiones HTTP por método, ruta y código",
		}, []string{"method", "route", "status_code"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveReport implementa reporting.Metrics.
func (p *Prometheus) ObserveReport(kind string, elapsed time.Duration, err error) {
	p.reportsTotal.WithLabelValues(kind, status(err)).Inc()
	p.reportDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ReportCacheHit implementa reporting.Metrics.
func (p *Prometheus) ReportCacheHit(kind string) {
	p.cacheHits.WithLabelValues(kind).Inc()
}

// ObserveExport implementa export.Metrics.
func (p *Prometheus) ObserveExport(format string, size int, err error) {
	p.exportsTotal.WithLabelValues(format, status(err)).Inc()
	if err == nil {
		p.exportBytes.WithLabelValues(format).Observe(float64(size))
	}
}

// ObserveCleanup implementa export.Metrics.
func (p *Prometheus) ObserveCleanup(deleted, failed int) {
	p.cleanupDeleted.Add(float64(deleted))
	p.cleanupFailures.Add(float64(failed))
}

// Middleware registra método, ruta (plantilla, no la URL) y código de cada petición.
func (p *Prometheus) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		code := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			code = fe.Code
		}
		route := c.Route().Path
		p.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(code)).Inc()
		p.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone /metrics.
func (p *Prometheus) Handler() fiber.Handler {
	return adaptor.HTTPHandler(p.HTTPHandler())
}

// HTTPHandler handler net/http del registro.
func (p *Prometheus) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Registry registro subyacente.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }
