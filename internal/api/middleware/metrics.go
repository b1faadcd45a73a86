// metrics.go — Prometheus HTTP метрики colorsense.
// Регистрирует метрики: cs_http_requests_total, cs_http_request_duration_seconds.
// Нормализация путей предотвращает взрывной рост кардинальности.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP метрики colorsense
var (
	// httpRequestsTotal — общее количество HTTP-запросов.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cs_http_requests_total",
			Help: "Общее количество HTTP-запросов к colorsense",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration — гистограмма длительности HTTP-запросов.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cs_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к colorsense в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
// Записывает количество запросов и длительность для каждого endpoint.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Нормализуем путь для лейблов метрик
			normalizedPath := normalizePath(r.URL.Path)

			wrapped := newMetricsResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(wrapped.statusCode)

			httpRequestsTotal.WithLabelValues(r.Method, normalizedPath, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, normalizedPath).Observe(duration)
		})
	}
}

// metricsResponseWriter — обёртка для перехвата статус-кода.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Unwrap позволяет http.ResponseController получить доступ к оригинальному ResponseWriter.
func (rw *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// normalizePath заменяет переменные сегменты пути шаблоном маршрута
// для предотвращения взрывного роста кардинальности метрик.
// /api/colors/HC-154 → /api/colors/{code}
// /api/colors/HC-154/palette → /api/colors/{code}/palette
// /api/colors/room/Kitchen → /api/colors/room/{room}
func normalizePath(path string) string {
	// Статические пути — возвращаем как есть
	switch path {
	case "/health/live", "/health/ready", "/metrics",
		"/api/colors", "/api/colors/search", "/api/search-colors", "/api/query":
		return path
	}

	const colorsPrefix = "/api/colors/"
	rest, ok := strings.CutPrefix(path, colorsPrefix)
	if !ok || rest == "" {
		return "other"
	}

	segments := strings.Split(rest, "/")
	switch {
	case len(segments) == 2 && segments[0] == "room":
		return "/api/colors/room/{room}"
	case len(segments) == 2 && segments[0] == "undertone":
		return "/api/colors/undertone/{undertone}"
	case len(segments) == 1:
		return "/api/colors/{code}"
	case len(segments) == 2 && segments[1] == "palette":
		return "/api/colors/{code}/palette"
	}

	return "other"
}
