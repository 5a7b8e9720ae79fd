package middleware

import (
	"context"
	"net"
	"net/http"

	"dsa_arena/internal/common"
	"dsa_arena/internal/platform/logger"
	"dsa_arena/internal/platform/metrics"
)

// Limiter decides whether one more request for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit throttles by client IP under the given route name. Limiter
// errors are logged and the request is let through.
func RateLimit(limiter Limiter, route string, m *metrics.Metrics, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			allowed, err := limiter.Allow(r.Context(), route+":"+ip)
			if err != nil {
				log.Warn("Rate limiter unavailable, allowing request", "route", route, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				m.RateLimiterRejections.WithLabelValues(route).Inc()
				common.RespondWithDomainError(w, common.TooManyRequests("Too many requests. Please try again later."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
