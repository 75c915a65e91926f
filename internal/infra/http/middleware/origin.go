package middleware

import (
	"net/http"
	"net/url"
)

// SameOrigin rejects mutating cross-site requests by comparing the
// Origin header (Referer as fallback) against the configured site
// origin. The payment webhook is mounted outside this middleware.
func SameOrigin(siteOrigin string) func(http.Handler) http.Handler {
	expected, parseErr := url.Parse(siteOrigin)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			if parseErr != nil || expected.Host == "" {
				writeError(w, http.StatusForbidden, "forbidden", "site origin is not configured")
				return
			}

			origin := r.Header.Get("Origin")
			if origin == "" {
				origin = r.Header.Get("Referer")
			}

			u, err := url.Parse(origin)
			if err != nil || origin == "" || u.Scheme != expected.Scheme || u.Host != expected.Host {
				writeError(w, http.StatusForbidden, "forbidden", "cross-origin request rejected")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
