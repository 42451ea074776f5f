package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"rampsync.backend/pkg/logger"
	"rampsync.backend/pkg/metrics"
)

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware(), LoggerMiddleware())
	r.GET("/x", func(c *gin.Context) {
		fromCtx, _ := c.Request.Context().Value(logger.RequestIDKey).(string)
		c.String(http.StatusOK, fromCtx)
	})

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x?debug=1", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.NotEmpty(t, w.Body.String())
		require.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, "req-123", w.Body.String())
	})
}

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/things/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/things/:id", "418")
	before := testutil.ToFloat64(counter)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/42", nil))
	require.Equal(t, http.StatusTeapot, w.Code)
	require.Equal(t, before+1, testutil.ToFloat64(counter))

	unmatched := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	before = testutil.ToFloat64(unmatched)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, before+1, testutil.ToFloat64(unmatched))
}
