package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRequestsTotal    = "titlelens.requests.total"
	metricRequestDuration  = "titlelens.request.duration.seconds"
	metricErrorsTotal      = "titlelens.errors.total"
	metricInflightRequests = "titlelens.inflight.requests"

	metricSnapshotsTotal   = "titlelens.snapshots.total"
	metricSnapshotDuration = "titlelens.snapshot.duration.seconds"
	metricDatasetRecords   = "titlelens.dataset.records"

	attrOp     = "op"
	attrStatus = "status"
	attrFilter = "filter"
	attrType   = "type"

	statusError = "error"
)

// durationBucketBoundaries covers 1ms to 30s request latencies.
var durationBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// snapshotBucketBoundaries covers in-memory aggregation passes, 100µs to 1s.
var snapshotBucketBoundaries = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1}

// REDMetrics holds the OTel instruments for Rate, Error, Duration metrics.
type REDMetrics struct {
	requestsTotal    metric.Int64Counter
	requestDuration  metric.Float64Histogram
	errorsTotal      metric.Int64Counter
	inflightRequests metric.Int64UpDownCounter
}

// NewREDMetrics creates RED metric instruments from the given meter.
func NewREDMetrics(mt metric.Meter) (*REDMetrics, error) {
	reqTotal, err := mt.Int64Counter(metricRequestsTotal,
		metric.WithDescription("Total number of requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRequestsTotal, err)
	}

	reqDuration, err := mt.Float64Histogram(metricRequestDuration,
		metric.WithDescription("Request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRequestDuration, err)
	}

	errTotal, err := mt.Int64Counter(metricErrorsTotal,
		metric.WithDescription("Total number of errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricErrorsTotal, err)
	}

	inflight, err := mt.Int64UpDownCounter(metricInflightRequests,
		metric.WithDescription("Number of in-flight requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricInflightRequests, err)
	}

	return &REDMetrics{
		requestsTotal:    reqTotal,
		requestDuration:  reqDuration,
		errorsTotal:      errTotal,
		inflightRequests: inflight,
	}, nil
}

// RecordRequest records a completed request with its operation, status, and duration.
func (rm *REDMetrics) RecordRequest(ctx context.Context, op, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrStatus, status),
	)

	rm.requestsTotal.Add(ctx, 1, attrs)
	rm.requestDuration.Record(ctx, duration.Seconds(), attrs)

	if status == statusError {
		rm.errorsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String(attrOp, op),
		))
	}
}

// TrackInflight increments the in-flight gauge and returns a function to decrement it.
func (rm *REDMetrics) TrackInflight(ctx context.Context, op string) func() {
	attrs := metric.WithAttributes(attribute.String(attrOp, op))
	rm.inflightRequests.Add(ctx, 1, attrs)

	return func() {
		rm.inflightRequests.Add(ctx, -1, attrs)
	}
}

// DashboardMetrics holds the instruments describing the loaded dataset and
// the aggregation passes run over it.
type DashboardMetrics struct {
	snapshotsTotal   metric.Int64Counter
	snapshotDuration metric.Float64Histogram
	datasetRecords   metric.Int64Gauge
}

// NewDashboardMetrics creates dashboard instruments from the given meter.
func NewDashboardMetrics(mt metric.Meter) (*DashboardMetrics, error) {
	snapshots, err := mt.Int64Counter(metricSnapshotsTotal,
		metric.WithDescription("Total number of chart snapshots computed"),
		metric.WithUnit("{snapshot}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricSnapshotsTotal, err)
	}

	duration, err := mt.Float64Histogram(metricSnapshotDuration,
		metric.WithDescription("Time to aggregate all charts for one snapshot"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(snapshotBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricSnapshotDuration, err)
	}

	records, err := mt.Int64Gauge(metricDatasetRecords,
		metric.WithDescription("Number of normalized records held, by content type"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricDatasetRecords, err)
	}

	return &DashboardMetrics{
		snapshotsTotal:   snapshots,
		snapshotDuration: duration,
		datasetRecords:   records,
	}, nil
}

// RecordSnapshot records one aggregation pass under the given filter type.
func (dm *DashboardMetrics) RecordSnapshot(ctx context.Context, filterType string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String(attrFilter, filterType))

	dm.snapshotsTotal.Add(ctx, 1, attrs)
	dm.snapshotDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordDataset publishes the number of records held per content type.
func (dm *DashboardMetrics) RecordDataset(ctx context.Context, counts map[string]int) {
	for typ, n := range counts {
		dm.datasetRecords.Record(ctx, int64(n), metric.WithAttributes(attribute.String(attrType, typ)))
	}
}
