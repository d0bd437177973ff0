package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/emiliopalmerini/herdstats/internal/adapters/otel"
	"github.com/emiliopalmerini/herdstats/internal/domain"
	"github.com/emiliopalmerini/herdstats/internal/infrastructure/database"
	"github.com/emiliopalmerini/herdstats/internal/ports"
	"github.com/emiliopalmerini/herdstats/internal/util"
)

// ProductionRepository runs the aggregate production queries.
type ProductionRepository struct {
	client  *database.Client
	dialect Dialect
	metrics ports.MetricsExporter
}

// NewProductionRepository returns a repository bound to client. A nil
// metrics exporter records nothing.
func NewProductionRepository(client *database.Client, metrics ports.MetricsExporter) (*ProductionRepository, error) {
	d, err := DialectFor(client.Driver)
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = otel.NewNoOpExporter()
	}
	return &ProductionRepository{client: client, dialect: d, metrics: metrics}, nil
}

// query binds params, runs the statement on a checked connection and hands
// every row, scanned into width untyped columns, to fn.
func query(ctx context.Context, client *database.Client, d Dialect, metrics ports.MetricsExporter, name, tmpl string, params map[string]any, width int, fn func(cols []any) error) (err error) {
	start := time.Now()
	defer func() { metrics.RecordQuery(ctx, name, time.Since(start), err) }()

	stmt, args, err := d.Bind(d.Render(tmpl), params)
	if err != nil {
		return err
	}

	return client.WithConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, stmt, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		cols := make([]any, width)
		ptrs := make([]any, width)
		for i := range cols {
			ptrs[i] = &cols[i]
		}
		for rows.Next() {
			if err := rows.Scan(ptrs...); err != nil {
				return err
			}
			if err := fn(cols); err != nil {
				return err
			}
		}
		return rows.Err()
	})
}

func moments(cols []any) domain.Moments {
	return domain.Moments{
		N:     util.ToInt64(cols[0]),
		Sum:   util.ToFloat64(cols[1]),
		SumSq: util.ToFloat64(cols[2]),
	}
}

// periodWidth is the number of columns selected by periodMoments.
const periodWidth = 10

func periodFrom(cols []any) domain.PeriodMoments {
	return domain.PeriodMoments{
		Days:        moments(cols[0:3]),
		Milk:        moments(cols[3:6]),
		Births:      moments(cols[6:9]),
		CountBirths: util.ToInt64(cols[9]),
	}
}

func (r *ProductionRepository) periods(ctx context.Context, name, tmpl string, f domain.FilterSelection) ([]domain.PeriodStats, error) {
	var out []domain.PeriodStats
	err := query(ctx, r.client, r.dialect, r.metrics, name, tmpl, f.Params(), 1+periodWidth, func(cols []any) error {
		if cols[0] == nil {
			return nil
		}
		p := periodFrom(cols[1:])
		p.Key = int(util.ToInt64(cols[0]))
		out = append(out, p.Stats())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", name, err)
	}
	return out, nil
}

func (r *ProductionRepository) YearlyStats(ctx context.Context, f domain.FilterSelection) ([]domain.PeriodStats, error) {
	return r.periods(ctx, "yearly_stats", queryYearlyStats, f)
}

func (r *ProductionRepository) LactationStats(ctx context.Context, f domain.FilterSelection) ([]domain.PeriodStats, error) {
	return r.periods(ctx, "lactation_stats", queryLactationStats, f)
}

func (r *ProductionRepository) MonthlyStats(ctx context.Context, f domain.FilterSelection) ([]domain.PeriodStats, error) {
	return r.periods(ctx, "monthly_stats", queryMonthlyStats, f)
}

func (r *ProductionRepository) Totals(ctx context.Context, f domain.FilterSelection) (*domain.Totals, error) {
	var totals *domain.Totals
	err := query(ctx, r.client, r.dialect, r.metrics, "totals", queryTotals, f.Params(), periodWidth+1, func(cols []any) error {
		p := periodFrom(cols)
		t := domain.TotalsMoments{
			Days:        p.Days,
			Milk:        p.Milk,
			Births:      p.Births,
			TotalBirths: p.CountBirths,
			TotalYears:  util.ToInt64(cols[periodWidth]),
		}.Totals()
		totals = &t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get totals: %w", err)
	}
	if totals == nil {
		return &domain.Totals{}, nil
	}
	return totals, nil
}

func (r *ProductionRepository) YieldClasses(ctx context.Context, f domain.FilterSelection) ([]domain.ClassRow, error) {
	var out []domain.ClassRow
	err := query(ctx, r.client, r.dialect, r.metrics, "yield_classes", queryYieldClasses, f.Params(), 8, func(cols []any) error {
		out = append(out, domain.ClassMoments{
			Index: int(util.ToInt64(cols[0])),
			Count: util.ToInt64(cols[1]),
			Days:  moments(cols[2:5]),
			Milk:  moments(cols[5:8]),
		}.Row())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get yield classes: %w", err)
	}
	return out, nil
}
