package otel

import (
	"context"
	"time"
)

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) RecordQuery(ctx context.Context, query string, elapsed time.Duration, err error) {
}

func (e *NoOpExporter) RecordPage(ctx context.Context, page, outcome string) {}

func (e *NoOpExporter) Close(ctx context.Context) error {
	return nil
}
