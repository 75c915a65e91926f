package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/decomly/lead-broker/internal/infra/ratelimit"
)

// RateLimit throttles by session user when one is on the context,
// otherwise by client IP.
func RateLimit(limiter *ratelimit.Limiter, cfg ratelimit.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identifier := ClientIP(r)
			if session, ok := SessionFrom(r.Context()); ok {
				identifier = session.UserID
			}

			result := limiter.Allow(r.Context(), cfg, identifier)
			if !result.Allowed {
				RecordRateLimitRejection(cfg.Name)

				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.Reset.Unix(), 10))
				retryAfter := int(result.RetryAfter.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

				writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP trusts the proxy chain: first X-Forwarded-For entry, then
// X-Real-IP, else "unknown" (anonymous callers share that bucket).
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return "unknown"
}
