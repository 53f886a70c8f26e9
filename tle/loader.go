package tle

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/tlekit/internal/logging"
	"github.com/signalsfoundry/tlekit/internal/observability"
)

const tracerName = "github.com/signalsfoundry/tlekit/tle"

// Loader decodes TLE batches from a reader with structured logging,
// Prometheus metrics, and a trace span per batch. The pure FromLines /
// ParseAll functions stay free of I/O and instrumentation; the Loader is
// the layer hosts wire their observability into.
type Loader struct {
	log           logging.Logger
	metrics       *observability.ParseCollector
	collectErrors bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger attaches a structured logger. The default drops all logs.
func WithLogger(l logging.Logger) LoaderOption {
	return func(ld *Loader) {
		if l != nil {
			ld.log = l
		}
	}
}

// WithMetrics attaches a parse metrics collector.
func WithMetrics(c *observability.ParseCollector) LoaderOption {
	return func(ld *Loader) { ld.metrics = c }
}

// CollectErrors makes Read continue past bad triplets and report them all
// at the end as a BatchError, instead of aborting on the first one.
func CollectErrors() LoaderOption {
	return func(ld *Loader) { ld.collectErrors = true }
}

// NewLoader constructs a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	ld := &Loader{log: logging.Noop()}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// BatchError aggregates the per-record failures of a batch read with the
// CollectErrors policy.
type BatchError struct {
	Errors []error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("tle: %d records failed to parse", len(e.Errors))
}

// Read consumes name/line1/line2 triplets from r until EOF. A trailing
// group of fewer than three lines is discarded. Under the default policy
// the first bad triplet aborts the read, returning the records decoded so
// far alongside the error; under CollectErrors every failure is gathered
// into a BatchError and all good records are returned.
func (ld *Loader) Read(ctx context.Context, r io.Reader) ([]*Record, error) {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "tlekit.ParseBatch", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	start := time.Now()

	var (
		group    [3]string
		have     int
		index    int
		records  []*Record
		failures []error
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		// Catalog files are frequently CRLF-terminated.
		group[have] = strings.TrimRight(scanner.Text(), "\r")
		have++
		if have < 3 {
			continue
		}
		have = 0

		rec, err := FromLines(group[0], group[1], group[2])
		if err != nil {
			wrapped := fmt.Errorf("tle: record %d (%q): %w", index, group[0], err)
			ld.metrics.RecordFailure(failureStage(err))
			ld.log.Warn(ctx, "tle record rejected",
				logging.Int("index", index),
				logging.String("name", group[0]),
				logging.String("error", err.Error()),
			)
			span.RecordError(wrapped)
			if !ld.collectErrors {
				ld.finishSpan(span, start, len(records), 1)
				return records, wrapped
			}
			failures = append(failures, wrapped)
		} else {
			records = append(records, rec)
			ld.metrics.RecordParsed()
		}
		index++
	}
	if err := scanner.Err(); err != nil {
		ld.finishSpan(span, start, len(records), len(failures))
		return records, fmt.Errorf("tle: read lines: %w", err)
	}
	if have > 0 {
		ld.metrics.RecordFailure(observability.StagePartition)
		ld.log.Debug(ctx, "discarding trailing short group", logging.Int("lines", have))
	}

	ld.finishSpan(span, start, len(records), len(failures))

	if len(failures) > 0 {
		return records, &BatchError{Errors: failures}
	}
	return records, nil
}

func (ld *Loader) finishSpan(span trace.Span, start time.Time, records, failures int) {
	elapsed := time.Since(start)
	ld.metrics.ObserveBatch(records, elapsed.Seconds())
	span.SetAttributes(
		attribute.Int("tle.records", records),
		attribute.Int("tle.failures", failures),
	)
}

// failureStage maps a parse error onto the metrics stage label.
func failureStage(err error) string {
	switch e := err.(type) {
	case *MalformedLineError:
		if e.Line == 1 {
			return observability.StageLine1
		}
		return observability.StageLine2
	case *LineNumberMismatchError:
		if e.Want == '1' {
			return observability.StageLine1
		}
		return observability.StageLine2
	case *FieldDecodeError:
		return observability.StageConstruct
	default:
		return observability.StageConstruct
	}
}
