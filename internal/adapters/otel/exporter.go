package otel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	serviceName    = "herdstats"
	serviceVersion = "1.0.0"
)

// ErrDisabled is returned by NewExporter when export is not configured.
var ErrDisabled = errors.New("OTEL exporter is disabled or endpoint not configured")

// Exporter exports dashboard metrics to an OTEL Collector.
type Exporter struct {
	provider      *sdkmetric.MeterProvider
	queryDuration metric.Float64Histogram
	queriesTotal  metric.Int64Counter
	pageRenders   metric.Int64Counter
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, ErrDisabled
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	return newExporter(provider)
}

func newExporter(provider *sdkmetric.MeterProvider) (*Exporter, error) {
	meter := provider.Meter(serviceName)

	queryDuration, err := meter.Float64Histogram(
		"herdstats_query_duration_seconds",
		metric.WithDescription("Duration of dashboard SQL queries"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating query duration histogram: %w", err)
	}

	queriesTotal, err := meter.Int64Counter(
		"herdstats_queries_total",
		metric.WithDescription("Number of dashboard SQL queries"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating queries counter: %w", err)
	}

	pageRenders, err := meter.Int64Counter(
		"herdstats_page_renders_total",
		metric.WithDescription("Number of dashboard page renders"),
		metric.WithUnit("{render}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating page renders counter: %w", err)
	}

	return &Exporter{
		provider:      provider,
		queryDuration: queryDuration,
		queriesTotal:  queriesTotal,
		pageRenders:   pageRenders,
	}, nil
}

// RecordQuery records the duration and outcome of one query.
func (e *Exporter) RecordQuery(ctx context.Context, query string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	opt := metric.WithAttributes(
		attribute.String("query", query),
		attribute.String("outcome", outcome),
	)
	e.queryDuration.Record(ctx, elapsed.Seconds(), opt)
	e.queriesTotal.Add(ctx, 1, opt)
}

// RecordPage records one page render.
func (e *Exporter) RecordPage(ctx context.Context, page, outcome string) {
	e.pageRenders.Add(ctx, 1, metric.WithAttributes(
		attribute.String("page", page),
		attribute.String("outcome", outcome),
	))
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
