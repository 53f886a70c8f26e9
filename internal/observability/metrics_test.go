package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestParseCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewParseCollector(reg)
	if err != nil {
		t.Fatalf("NewParseCollector: %v", err)
	}

	collector.RecordParsed()
	collector.RecordParsed()
	collector.RecordFailure(StageLine2)
	collector.ObserveBatch(2, 0.01)

	if got := testutil.ToFloat64(collector.RecordsParsed); got != 2 {
		t.Errorf("tle_records_parsed_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.ParseFailures.WithLabelValues(StageLine2)); got != 1 {
		t.Errorf("tle_parse_failures_total{stage=line2} = %v, want 1", got)
	}
	if count := histogramSampleCount(t, reg, "tle_batch_records"); count != 1 {
		t.Errorf("tle_batch_records sample_count = %d, want 1", count)
	}
	if count := histogramSampleCount(t, reg, "tle_batch_duration_seconds"); count != 1 {
		t.Errorf("tle_batch_duration_seconds sample_count = %d, want 1", count)
	}
}

func TestParseCollectorDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewParseCollector(reg)
	if err != nil {
		t.Fatalf("NewParseCollector: %v", err)
	}
	second, err := NewParseCollector(reg)
	if err != nil {
		t.Fatalf("NewParseCollector (second): %v", err)
	}

	// Both handles must feed the same underlying series.
	first.RecordParsed()
	second.RecordParsed()
	if got := testutil.ToFloat64(second.RecordsParsed); got != 2 {
		t.Errorf("tle_records_parsed_total = %v, want 2 across both handles", got)
	}
}

func TestParseCollectorNilSafe(t *testing.T) {
	var collector *ParseCollector
	collector.RecordParsed()
	collector.RecordFailure(StageLine1)
	collector.ObserveBatch(1, 0.001)
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewParseCollector(reg)
	if err != nil {
		t.Fatalf("NewParseCollector: %v", err)
	}
	collector.RecordParsed()

	srv := httptest.NewServer(collector.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	body := make([]byte, 1<<16)
	n, _ := resp.Body.Read(body)
	if !strings.Contains(string(body[:n]), "tle_records_parsed_total") {
		t.Error("metrics output missing tle_records_parsed_total")
	}
}

func histogramSampleCount(t *testing.T, g prometheus.Gatherer, name string) uint64 {
	t.Helper()
	families, err := g.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	var family *dto.MetricFamily
	for _, mf := range families {
		if mf.GetName() == name {
			family = mf
			break
		}
	}
	if family == nil {
		t.Fatalf("histogram %s not found", name)
	}
	for _, m := range family.GetMetric() {
		if h := m.GetHistogram(); h != nil {
			return h.GetSampleCount()
		}
	}
	t.Fatalf("metric family %s carries no histogram", name)
	return 0
}
