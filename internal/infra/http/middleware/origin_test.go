package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func originProtected(siteOrigin string) http.Handler {
	return SameOrigin(siteOrigin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestSameOrigin(t *testing.T) {
	const site = "https://example.com"

	t.Run("matching origin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/quote", nil)
		req.Header.Set("Origin", "https://example.com")
		w := httptest.NewRecorder()

		originProtected(site).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("referer works as fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/quote", nil)
		req.Header.Set("Referer", "https://example.com/get-a-quote")
		w := httptest.NewRecorder()

		originProtected(site).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("cross-site origin is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/quote", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()

		originProtected(site).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("scheme must match too", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/quote", nil)
		req.Header.Set("Origin", "http://example.com")
		w := httptest.NewRecorder()

		originProtected(site).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing origin and referer is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/quote", nil)
		w := httptest.NewRecorder()

		originProtected(site).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("reads pass without any origin header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard/leads", nil)
		w := httptest.NewRecorder()

		originProtected(site).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("unconfigured site origin fails closed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/quote", nil)
		req.Header.Set("Origin", "https://example.com")
		w := httptest.NewRecorder()

		originProtected("").ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
