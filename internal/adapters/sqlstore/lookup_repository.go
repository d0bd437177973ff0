package sqlstore

import (
	"context"
	"fmt"

	"github.com/emiliopalmerini/herdstats/internal/adapters/otel"
	"github.com/emiliopalmerini/herdstats/internal/domain"
	"github.com/emiliopalmerini/herdstats/internal/infrastructure/database"
	"github.com/emiliopalmerini/herdstats/internal/ports"
	"github.com/emiliopalmerini/herdstats/internal/util"
)

// LookupRepository reads the option lists for the filter widgets.
type LookupRepository struct {
	client  *database.Client
	dialect Dialect
	metrics ports.MetricsExporter
}

func NewLookupRepository(client *database.Client, metrics ports.MetricsExporter) (*LookupRepository, error) {
	d, err := DialectFor(client.Driver)
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = otel.NewNoOpExporter()
	}
	return &LookupRepository{client: client, dialect: d, metrics: metrics}, nil
}

func (r *LookupRepository) Breeds(ctx context.Context) ([]domain.Breed, error) {
	var out []domain.Breed
	err := query(ctx, r.client, r.dialect, r.metrics, "breeds", queryBreeds, nil, 2, func(cols []any) error {
		out = append(out, domain.Breed{ID: int(util.ToInt64(cols[0])), Name: toString(cols[1])})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list breeds: %w", err)
	}
	return out, nil
}

func (r *LookupRepository) Years(ctx context.Context) ([]int, error) {
	var out []int
	err := query(ctx, r.client, r.dialect, r.metrics, "years", queryYears, nil, 1, func(cols []any) error {
		out = append(out, int(util.ToInt64(cols[0])))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list years: %w", err)
	}
	return out, nil
}

func (r *LookupRepository) Areas(ctx context.Context) ([]domain.Area, error) {
	var out []domain.Area
	err := query(ctx, r.client, r.dialect, r.metrics, "areas", queryAreas, nil, 2, func(cols []any) error {
		out = append(out, domain.Area{ID: int(util.ToInt64(cols[0])), Name: toString(cols[1])})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	return out, nil
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}
