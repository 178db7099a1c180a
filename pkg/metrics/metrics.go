// Package metrics concentra os coletores Prometheus expostos em /metrics
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/sales-pulse-api/internal/domain"
)

const namespace = "sales_pulse"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Requisições HTTP por método, rota e status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duração das requisições HTTP.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	forecasts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forecasts_total",
		Help:      "Previsões calculadas por indicador de confiança e resultado.",
	}, []string{"confidence", "outcome"})

	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_requests_total",
		Help:      "Requisições recusadas pelo limitador.",
	})

	retentionRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "retention_removed_uploads_total",
		Help:      "Uploads removidos pela rotina de retenção.",
	})
)

// Handler expõe o registro padrão no formato Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveRequest(method, route string, status int, seconds float64) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func ObserveForecast(result *domain.ForecastResult) {
	if result == nil {
		return
	}
	outcome := "ok"
	if result.Failed() {
		outcome = "error"
	}
	forecasts.WithLabelValues(string(result.ConfidenceIndicator), outcome).Inc()
}

func IncRateLimited() {
	rateLimited.Inc()
}

func AddRetentionRemoved(n int) {
	retentionRemoved.Add(float64(n))
}
