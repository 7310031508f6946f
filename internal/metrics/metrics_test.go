package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorExposesMetrics(t *testing.T) {
	c := NewCollector(2, time.Second, 29)
	c.Ticks.Inc()
	c.Announcements.WithLabelValues("YAMANOTE").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.SpeedMultiplier))
	assert.Equal(t, 29.0, testutil.ToFloat64(c.RouteStations))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Announcements.WithLabelValues("YAMANOTE")))

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "conductor_ticks_total 1")
	assert.Contains(t, string(body), `conductor_announcements_total{theme="YAMANOTE"} 1`)
}
