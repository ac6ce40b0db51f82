package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/park285/pharmacist-relay-go/internal/metrics"
)

func TestMetricsRecordsRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Metrics())
	router.POST("/get-gemini-response/", func(c *gin.Context) { c.Status(http.StatusUnprocessableEntity) })

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/get-gemini-response/", "422")
	before := testutil.ToFloat64(counter)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/get-gemini-response/", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Fatalf("expected one request counted, got %v", got)
	}
	if inFlight := testutil.ToFloat64(metrics.HTTPRequestsInFlight); inFlight != 0 {
		t.Fatalf("expected in-flight gauge back to zero, got %v", inFlight)
	}
}

func TestMetricsUnmatchedRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Metrics())

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")
	before := testutil.ToFloat64(counter)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/random/path", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Fatalf("expected unmatched request counted, got %v", got)
	}
}
