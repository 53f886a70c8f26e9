package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Parse stages used as the label on the failure counter.
const (
	StagePartition = "partition"
	StageLine1     = "line1"
	StageLine2     = "line2"
	StageConstruct = "construct"
)

// ParseCollector bundles Prometheus metrics for the TLE decode path and
// provides a ready-made /metrics handler for hosts that want one.
type ParseCollector struct {
	gatherer prometheus.Gatherer

	RecordsParsed prometheus.Counter
	ParseFailures *prometheus.CounterVec
	BatchRecords  prometheus.Histogram
	BatchDuration prometheus.Histogram
}

// NewParseCollector registers parse metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewParseCollector(reg prometheus.Registerer) (*ParseCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	parsed, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tle_records_parsed_total",
		Help: "Total number of TLE records successfully decoded.",
	}), "tle_records_parsed_total")
	if err != nil {
		return nil, err
	}

	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tle_parse_failures_total",
		Help: "Total number of TLE records rejected, labeled by decode stage.",
	}, []string{"stage"})
	failures, err = registerCounterVec(reg, failures, "tle_parse_failures_total")
	if err != nil {
		return nil, err
	}

	batchRecords, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tle_batch_records",
		Help:    "Number of records decoded per batch.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	}), "tle_batch_records")
	if err != nil {
		return nil, err
	}

	batchDuration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tle_batch_duration_seconds",
		Help:    "Wall time spent decoding a batch of TLE records.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}), "tle_batch_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &ParseCollector{
		gatherer:      gatherer,
		RecordsParsed: parsed,
		ParseFailures: failures,
		BatchRecords:  batchRecords,
		BatchDuration: batchDuration,
	}, nil
}

// RecordParsed counts one successfully decoded record.
func (c *ParseCollector) RecordParsed() {
	if c == nil || c.RecordsParsed == nil {
		return
	}
	c.RecordsParsed.Inc()
}

// RecordFailure counts one rejected record at the given decode stage.
func (c *ParseCollector) RecordFailure(stage string) {
	if c == nil || c.ParseFailures == nil {
		return
	}
	c.ParseFailures.WithLabelValues(stage).Inc()
}

// ObserveBatch records the size and duration of a completed batch.
func (c *ParseCollector) ObserveBatch(records int, seconds float64) {
	if c == nil {
		return
	}
	if c.BatchRecords != nil {
		c.BatchRecords.Observe(float64(records))
	}
	if c.BatchDuration != nil {
		c.BatchDuration.Observe(seconds)
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *ParseCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}
