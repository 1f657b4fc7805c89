package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_RecordUpstreamStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordUpstreamStatus("courses", 200)
	c.RecordUpstreamStatus("courses", 200)
	c.RecordUpstreamStatus("courses", 404)

	got := testutil.ToFloat64(c.upstreamStatus.WithLabelValues("courses", "200"))
	if got != 2 {
		t.Errorf("upstream status 200 count = %v, want 2", got)
	}
	got = testutil.ToFloat64(c.upstreamStatus.WithLabelValues("courses", "404"))
	if got != 1 {
		t.Errorf("upstream status 404 count = %v, want 1", got)
	}
}

func TestCollector_RecordUpstreamFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordUpstreamFailure("login")
	c.RecordUpstreamFailure("login")

	got := testutil.ToFloat64(c.upstreamFail.WithLabelValues("login"))
	if got != 2 {
		t.Errorf("upstream failure count = %v, want 2", got)
	}
}

func TestCollector_RecordProxyError(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordProxyError("users", 500)

	got := testutil.ToFloat64(c.proxyErrors.WithLabelValues("users", "500"))
	if got != 1 {
		t.Errorf("proxy error count = %v, want 1", got)
	}
}

func TestCollector_RecordCoursesReshaped(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordCoursesReshaped(10)
	c.RecordCoursesReshaped(3)

	got := testutil.ToFloat64(c.coursesReshaped)
	if got != 13 {
		t.Errorf("courses reshaped count = %v, want 13", got)
	}
}

func TestCollector_RecordUpstreamLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordUpstreamLatency("stats", 150*time.Millisecond)

	count := testutil.CollectAndCount(c.upstreamLatency)
	if count != 1 {
		t.Errorf("latency metric count = %d, want 1", count)
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordUpstreamStatus("courses", 200)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "admin_gateway_upstream_status_total") {
		t.Error("metrics output should contain admin_gateway_upstream_status_total")
	}
}
