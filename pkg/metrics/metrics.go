// Package metrics expõe as métricas Prometheus da API de previsão
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "revenue_forecast_"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	stageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    metricPrefix + "stage_duration_seconds",
			Help:    "Duration of each forecast pipeline stage",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"stage", "outcome"},
	)

	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "runs_total",
			Help: "Forecast runs by outcome",
		},
		[]string{"outcome"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "http_requests_total",
			Help: "HTTP requests by method and status code",
		},
		[]string{"method", "status_code"},
	)
)

func init() {
	prometheus.MustRegister(stageDuration, runsTotal, httpRequests)
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}

// ObserveStage registra a duração de uma etapa da pipeline
func ObserveStage(stage string, start time.Time, err error) {
	stageDuration.WithLabelValues(stage, outcome(err)).Observe(time.Since(start).Seconds())
}

// ObserveRun contabiliza uma execução completa
func ObserveRun(err error) {
	runsTotal.WithLabelValues(outcome(err)).Inc()
}

// Handler expõe o endpoint /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware contabiliza as requisições HTTP por método e status
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(sw, r)
			httpRequests.WithLabelValues(r.Method, strconv.Itoa(sw.statusCode)).Inc()
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
