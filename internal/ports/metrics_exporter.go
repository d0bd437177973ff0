package ports

import (
	"context"
	"time"
)

// MetricsExporter records dashboard metrics to an external observability system.
type MetricsExporter interface {
	// RecordQuery records the duration and outcome of one aggregate or lookup query.
	RecordQuery(ctx context.Context, query string, elapsed time.Duration, err error)
	// RecordPage records one page render and its outcome (ok, invalid, empty, error).
	RecordPage(ctx context.Context, page, outcome string)
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}
