package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/cache"
)

// RateLimiter limita a quantidade de requisições por IP em janelas fixas.
func RateLimiter(client cache.Client, limit int, duration time.Duration, writeError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + r.URL.Path + ":" + ip
			ctx := r.Context()

			count, err := client.Incr(ctx, key)
			if err != nil {
				writeError(w, r, apperror.NewInternalError("Rate limiter unavailable", err))
				return
			}
			// A janela começa no primeiro acesso.
			if count == 1 {
				if err := client.Expire(ctx, key, duration); err != nil {
					writeError(w, r, apperror.NewInternalError("Rate limiter unavailable", err))
					return
				}
			}

			if count > int64(limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(duration.Seconds())))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(domain.ErrorResponse{
					Code:     http.StatusTooManyRequests,
					Category: "RATE_LIMITED",
					Message:  "Rate limit exceeded",
				})
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(limit)-count, 10))
			next.ServeHTTP(w, r)
		})
	}
}
