package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/products/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, path := range []string{"/api/products/a", "/api/products/b", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	out := scrape(t, m)
	assert.Contains(t, out, `storefront_http_requests_total{method="GET",route="/api/products/:id",status="404"} 2`)
	assert.Contains(t, out, `storefront_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.Contains(t, out, `storefront_http_requests_in_flight 0`)
	assert.Contains(t, out, `storefront_http_request_duration_seconds_count{method="GET",route="/api/products/:id"} 2`)
}

func TestStoreAvailable(t *testing.T) {
	m := New()
	m.SetStoreAvailable(true)
	assert.Contains(t, scrape(t, m), "storefront_store_available 1")
	m.SetStoreAvailable(false)
	assert.Contains(t, scrape(t, m), "storefront_store_available 0")
}

func TestInstancesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.RecordRequest("/", http.MethodGet, http.StatusOK, 0)
	assert.Contains(t, scrape(t, a), `route="/"`)
	assert.NotContains(t, scrape(t, b), `route="/"`)
}
