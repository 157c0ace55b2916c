package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tenantkit/backend/internal/domain"
	"github.com/tenantkit/backend/internal/handler"
	"github.com/tenantkit/backend/internal/handler/middleware"
)

func requestCount(t *testing.T, reg *prometheus.Registry, status string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			if labelValue(metric, "status") == status {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelValue(metric *dto.Metric, name string) string {
	for _, label := range metric.GetLabel() {
		if label.GetName() == name {
			return label.GetValue()
		}
	}
	return ""
}

func TestMetricsRecordsErrorStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(reg)

	app := fiber.New(fiber.Config{ErrorHandler: handler.NewErrorHandler(zap.NewNop())})
	app.Use(metrics.Handler())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/forbidden", func(c *fiber.Ctx) error { return domain.ErrInsufficientRole })

	for _, path := range []string{"/ok", "/forbidden"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	// Failed requests count under their real status, not 200.
	assert.Equal(t, float64(1), requestCount(t, reg, "200"))
	assert.Equal(t, float64(1), requestCount(t, reg, "403"))
	assert.Equal(t, float64(0), requestCount(t, reg, "500"))
}
