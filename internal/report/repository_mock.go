package report

import (
	"context"

	"github.com/emiliopalmerini/herdstats/internal/domain"
)

// MockProductionRepository is a mock implementation of ports.ProductionRepository for testing.
type MockProductionRepository struct {
	YearlyStatsFunc    func(ctx context.Context, f domain.FilterSelection) ([]domain.PeriodStats, error)
	TotalsFunc         func(ctx context.Context, f domain.FilterSelection) (*domain.Totals, error)
	LactationStatsFunc func(ctx context.Context, f domain.FilterSelection) ([]domain.PeriodStats, error)
	MonthlyStatsFunc   func(ctx context.Context, f domain.FilterSelection) ([]domain.PeriodStats, error)
	YieldClassesFunc   func(ctx context.Context, f domain.FilterSelection) ([]domain.ClassRow, error)
}

func (m *MockProductionRepository) YearlyStats(ctx context.Context, f domain.FilterSelection) ([]domain.PeriodStats, error) {
	if m.YearlyStatsFunc != nil {
		return m.YearlyStatsFunc(ctx, f)
	}
	return nil, nil
}

func (m *MockProductionRepository) Totals(ctx context.Context, f domain.FilterSelection) (*domain.Totals, error) {
	if m.TotalsFunc != nil {
		return m.TotalsFunc(ctx, f)
	}
	return &domain.Totals{}, nil
}

func (m *MockProductionRepository) LactationStats(ctx context.Context, f domain.FilterSelection) ([]domain.PeriodStats, error) {
	if m.LactationStatsFunc != nil {
		return m.LactationStatsFunc(ctx, f)
	}
	return nil, nil
}

func (m *MockProductionRepository) MonthlyStats(ctx context.Context, f domain.FilterSelection) ([]domain.PeriodStats, error) {
	if m.MonthlyStatsFunc != nil {
		return m.MonthlyStatsFunc(ctx, f)
	}
	return nil, nil
}

func (m *MockProductionRepository) YieldClasses(ctx context.Context, f domain.FilterSelection) ([]domain.ClassRow, error) {
	if m.YieldClassesFunc != nil {
		return m.YieldClassesFunc(ctx, f)
	}
	return nil, nil
}

// MockLookupRepository is a mock implementation of ports.LookupRepository for testing.
type MockLookupRepository struct {
	BreedsFunc func(ctx context.Context) ([]domain.Breed, error)
	YearsFunc  func(ctx context.Context) ([]int, error)
	AreasFunc  func(ctx context.Context) ([]domain.Area, error)
}

func (m *MockLookupRepository) Breeds(ctx context.Context) ([]domain.Breed, error) {
	if m.BreedsFunc != nil {
		return m.BreedsFunc(ctx)
	}
	return nil, nil
}

func (m *MockLookupRepository) Years(ctx context.Context) ([]int, error) {
	if m.YearsFunc != nil {
		return m.YearsFunc(ctx)
	}
	return nil, nil
}

func (m *MockLookupRepository) Areas(ctx context.Context) ([]domain.Area, error) {
	if m.AreasFunc != nil {
		return m.AreasFunc(ctx)
	}
	return nil, nil
}
