package sqlstore_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/herdstats/internal/adapters/sqlstore"
	"github.com/emiliopalmerini/herdstats/internal/domain"
	"github.com/emiliopalmerini/herdstats/internal/infrastructure/database"
)

func newProductionRepo(t *testing.T) (*sqlstore.ProductionRepository, *spyMetrics) {
	t.Helper()
	client := testClient(t)
	seedFixture(t, client)

	spy := &spyMetrics{}
	repo, err := sqlstore.NewProductionRepository(client, spy)
	require.NoError(t, err)
	return repo, spy
}

var chiosFilter = domain.FilterSelection{
	BreedID:   2,
	Lactation: domain.Range{From: 1, To: 5},
	Year:      domain.Range{From: 2015, To: 2017},
	MinDays:   90,
}

func TestProductionRepository_YearlyStats(t *testing.T) {
	repo, spy := newProductionRepo(t)

	got, err := repo.YearlyStats(context.Background(), chiosFilter)
	require.NoError(t, err)

	want := []domain.PeriodStats{
		{Key: 2015, AvgDays: 150, AvgMilk: 150, StdMilk: 50, StdDays: 50, StdBirths: 0.5, CountBirths: 2, AvgBirths: 1.5},
		{Key: 2016, AvgDays: 150, AvgMilk: 150, StdMilk: 0, StdDays: 0, StdBirths: 0, CountBirths: 1, AvgBirths: 1},
		{Key: 2017, AvgDays: 95, AvgMilk: 120, StdMilk: 0, StdDays: 0, StdBirths: 0, CountBirths: 1, AvgBirths: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("YearlyStats mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, spy.queries, 1)
	assert.Equal(t, "yearly_stats", spy.queries[0].name)
	assert.NoError(t, spy.queries[0].err)
}

func TestProductionRepository_TotalsMatchRecordCount(t *testing.T) {
	repo, _ := newProductionRepo(t)

	got, err := repo.Totals(context.Background(), chiosFilter)
	require.NoError(t, err)

	var want int64
	for _, r := range fixtureRecords {
		if r.HerdID == 10 && r.Lactation >= 1 && r.Lactation <= 5 && r.Days >= 90 {
			want++
		}
	}
	assert.Equal(t, want, got.TotalBirths)
	assert.Equal(t, int64(4), got.TotalBirths)
	assert.Equal(t, int64(3), got.TotalYears)
	assert.Equal(t, 136.25, got.AvgDays)
	assert.Equal(t, 142.5, got.AvgMilk)
	assert.Equal(t, 1.5, got.AvgPoly)
	assert.Equal(t, 0.5, got.StdBirths)
}

func TestProductionRepository_Empty(t *testing.T) {
	repo, _ := newProductionRepo(t)
	ctx := context.Background()
	f := chiosFilter
	f.BreedID = 4

	rows, err := repo.YearlyStats(ctx, f)
	require.NoError(t, err)
	assert.Empty(t, rows)

	totals, err := repo.Totals(ctx, f)
	require.NoError(t, err)
	assert.Zero(t, totals.TotalBirths)
	assert.Zero(t, totals.AvgMilk)

	classes, err := repo.YieldClasses(ctx, f)
	require.NoError(t, err)
	assert.Empty(t, classes)
}

func TestProductionRepository_LactationStats(t *testing.T) {
	repo, _ := newProductionRepo(t)
	f := chiosFilter
	f.Year = domain.Range{From: 2015, To: 2016}

	got, err := repo.LactationStats(context.Background(), f)
	require.NoError(t, err)

	keys := make([]int, len(got))
	for i, r := range got {
		keys[i] = r.Key
	}
	assert.Equal(t, []int{1, 2, 3, 6}, keys, "lactation range is not applied, min days is")
	assert.Equal(t, 300.0, got[3].AvgMilk)
}

func TestProductionRepository_MonthlyStats(t *testing.T) {
	repo, _ := newProductionRepo(t)

	got, err := repo.MonthlyStats(context.Background(), chiosFilter)
	require.NoError(t, err)

	want := map[int]int64{3: 2, 5: 2, 11: 1}
	require.Len(t, got, len(want))
	for _, r := range got {
		assert.Equal(t, want[r.Key], r.CountBirths, "month %d", r.Key)
	}
	assert.Equal(t, 3, got[0].Key)
}

func TestProductionRepository_YieldClasses(t *testing.T) {
	repo, _ := newProductionRepo(t)

	got, err := repo.YieldClasses(context.Background(), chiosFilter)
	require.NoError(t, err)

	want := []domain.ClassRow{
		{Index: 2, Count: 2, AvgDays: 97.5, AvgMilkKg: 110, StdMilkKg: 10},
		{Index: 3, Count: 1, AvgDays: 150, AvgMilkKg: 150, StdMilkKg: 0},
		{Index: 4, Count: 1, AvgDays: 200, AvgMilkKg: 200, StdMilkKg: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("YieldClasses mismatch (-want +got):\n%s", diff)
	}

	bins := domain.Bins(got)
	assert.Equal(t, "101 - 150", bins[0].Label)
	assert.Equal(t, 125.5, bins[0].Midpoint)
}

func TestProductionRepository_CancelledContext(t *testing.T) {
	repo, spy := newProductionRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.YearlyStats(ctx, chiosFilter)
	require.Error(t, err)
	require.Len(t, spy.queries, 1)
	assert.Error(t, spy.queries[0].err)
}

func TestNewProductionRepository_UnknownDriver(t *testing.T) {
	_, err := sqlstore.NewProductionRepository(&database.Client{Driver: "oracle"}, nil)
	assert.Error(t, err)
}
