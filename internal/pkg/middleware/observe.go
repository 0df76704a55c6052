package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"cinecatalog/internal/pkg/logger"
	"cinecatalog/internal/pkg/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Observe registra métricas e um log por requisição, rotulando pela rota do mux.
func Observe(log logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			elapsed := time.Since(start)

			metrics.RequestCounter.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
			metrics.RequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

			log.Debug("Requisição concluída", map[string]interface{}{
				"method":      r.Method,
				"route":       route,
				"status":      rec.status,
				"duration_ms": elapsed.Milliseconds(),
				"request_id":  RequestIDFromContext(r.Context()),
			})
		})
	}
}
