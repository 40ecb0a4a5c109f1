package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ox-dashboard/internal/infrastructure/metrics"
)

func TestMiddleware_CuentaPorRuta(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := metrics.NewProm(reg, func() int { return 3 })

	app := fiber.New()
	app.Use(p.Middleware())
	app.Get("/products", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", p.Handler())

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/products?page=2", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(p.RequestsTotal.WithLabelValues("GET", "/products", "200")))

	p.ObserveUpstream("list_products", "ok", 20*time.Millisecond)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	text := string(body)
	assert.True(t, strings.Contains(text, "oxdashboard_upstream_request_duration_seconds_count{op=\"list_products\",outcome=\"ok\"} 1"))
	assert.True(t, strings.Contains(text, "oxdashboard_sessions_in_memory 3"))
}
