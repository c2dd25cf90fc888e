package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetrics_IsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveUpstream("visits", "ok", time.Millisecond)
	m.SetBreakerState("getOwnerDetails", 2)
	m.ObserveHTTP("GET", "/x", "200")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetrics_RecordsAndExposes(t *testing.T) {
	m := New()
	m.ObserveUpstream("visits", "transport", 20*time.Millisecond)
	m.ObserveUpstream("visits", "transport", 20*time.Millisecond)
	m.SetBreakerState("getOwnerDetails", 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.upstreamRequests.WithLabelValues("visits", "transport")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.breakerState.WithLabelValues("getOwnerDetails")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `petclinic_circuit_breaker_state{name="getOwnerDetails"} 2`)
}
