package ports

import (
	"context"

	"github.com/emiliopalmerini/herdstats/internal/domain"
)

// ProductionRepository runs the aggregate queries behind the dashboard pages.
// Every call issues a fresh query; nothing is cached.
type ProductionRepository interface {
	YearlyStats(ctx context.Context, f domain.FilterSelection) ([]domain.PeriodStats, error)
	Totals(ctx context.Context, f domain.FilterSelection) (*domain.Totals, error)
	LactationStats(ctx context.Context, f domain.FilterSelection) ([]domain.PeriodStats, error)
	MonthlyStats(ctx context.Context, f domain.FilterSelection) ([]domain.PeriodStats, error)
	YieldClasses(ctx context.Context, f domain.FilterSelection) ([]domain.ClassRow, error)
}
