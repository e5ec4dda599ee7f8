// Package metrics colectores Prometheus de la API: tráfico HTTP y contadores de negocio.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "brickapp"

var (
	// Registry colectores propios de la aplicación.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Peticiones HTTP en curso.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Peticiones HTTP atendidas.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms a ~5s
		},
		[]string{"method", "route"},
	)

	ventasRegistradas = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ventas",
			Name:      "registradas_total",
			Help:      "Ventas registradas por tipo de comprobante.",
		},
		[]string{"comprobante", "tipo_venta"},
	)

	ventasAnuladas = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ventas",
			Name:      "anuladas_total",
			Help:      "Ventas anuladas.",
		},
	)

	entregasRegistradas = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "entregas",
			Name:      "registradas_total",
			Help:      "Entregas registradas según el estado de entrega resultante.",
		},
		[]string{"estado_entrega"},
	)

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Intentos de login por resultado.",
		},
		[]string{"resultado"},
	)

	consultas = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "consulta",
			Name:      "requests_total",
			Help:      "Consultas RENIEC/SUNAT por documento y resultado.",
		},
		[]string{"documento", "resultado"},
	)

	jobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "job_runs_total",
			Help:      "Ejecuciones de tareas programadas.",
		},
		[]string{"job", "success"},
	)

	jobDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "job_run_duration_seconds",
			Help:      "Duración de las tareas programadas.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"job"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		ventasRegistradas,
		ventasAnuladas,
		entregasRegistradas,
		logins,
		consultas,
		jobRuns,
		jobDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler expone el registro en formato Prometheus.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RequestStarted incrementa el gauge de peticiones en curso; devuelve la función que lo decrementa.
func RequestStarted() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// ObserveRequest registra una petición terminada. route es el patrón de la ruta
// (/api/ventas/:id), nunca la URL con ids, para acotar la cardinalidad.
func ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "desconocida"
	}
	method = strings.ToUpper(method)
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// VentaRegistrada cuenta una venta creada.
func VentaRegistrada(comprobante, tipoVenta string) {
	ventasRegistradas.WithLabelValues(comprobante, tipoVenta).Inc()
}

// VentaAnulada cuenta una anulación.
func VentaAnulada() { ventasAnuladas.Inc() }

// EntregaRegistrada cuenta una entrega con el estado de entrega en que quedó la venta.
func EntregaRegistrada(estadoEntrega string) {
	entregasRegistradas.WithLabelValues(estadoEntrega).Inc()
}

// Login cuenta un intento: ok, credenciales, inactivo, limitado.
func Login(resultado string) {
	logins.WithLabelValues(resultado).Inc()
}

// Consulta cuenta una consulta externa (dni|ruc) con su resultado (ok|no_encontrado|error|invalida).
func Consulta(documento, resultado string) {
	consultas.WithLabelValues(documento, resultado).Inc()
}

// JobRun registra la ejecución de una tarea programada.
func JobRun(job string, d time.Duration, success bool) {
	if job == "" {
		job = "desconocida"
	}
	if d <= 0 {
		d = time.Millisecond
	}
	jobRuns.WithLabelValues(job, strconv.FormatBool(success)).Inc()
	jobDuration.WithLabelValues(job).Observe(d.Seconds())
}
