package sqlstore_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/herdstats/internal/adapters/sqlstore"
	"github.com/emiliopalmerini/herdstats/internal/domain"
	"github.com/emiliopalmerini/herdstats/internal/infrastructure/database"
	"github.com/emiliopalmerini/herdstats/internal/migrate"
)

func testClient(t *testing.T) *database.Client {
	t.Helper()

	client, err := database.New(database.Options{
		Driver: database.DriverLibSQL,
		DSN:    "file:" + filepath.Join(t.TempDir(), "test.db"),
		Ping:   true,
	})
	require.NoError(t, err, "open test database")
	t.Cleanup(func() { _ = client.Close() })

	_, err = migrate.New(client.DB, nil).Up(context.Background())
	require.NoError(t, err, "run migrations")
	return client
}

func milk(kg int64) *int64 {
	g := kg * domain.GramsPerKg
	return &g
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixtureRecords is a small herd set with hand-computed aggregates.
// Breed 2, lactation 1..5, min days 90 matches records 0, 1, 2 and 5.
var fixtureRecords = []domain.ProductionRecord{
	{HerdID: 10, BirthDate: date(2015, time.March, 10), Lactation: 1, MilkGrams: milk(100), Days: 100, Males: 1, Females: 0, Year: 2015},
	{HerdID: 10, BirthDate: date(2015, time.March, 20), Lactation: 2, MilkGrams: milk(200), Days: 200, Males: 1, Females: 1, Year: 2015},
	{HerdID: 10, BirthDate: date(2016, time.May, 1), Lactation: 3, MilkGrams: milk(150), Days: 150, Males: 0, Females: 1, Year: 2016},
	{HerdID: 10, BirthDate: date(2016, time.June, 1), Lactation: 6, MilkGrams: milk(300), Days: 300, Males: 2, Females: 0, Year: 2016},
	{HerdID: 10, BirthDate: date(2016, time.May, 2), Lactation: 1, MilkGrams: nil, Days: 50, Males: 1, Females: 0, Year: 2016},
	{HerdID: 10, BirthDate: date(2017, time.November, 15), Lactation: 4, MilkGrams: milk(120), Days: 95, Males: 0, Females: 2, Year: 2017},
	{HerdID: 20, BirthDate: date(2015, time.April, 1), Lactation: 1, MilkGrams: milk(400), Days: 200, Males: 1, Females: 0, Year: 2015},
}

func seedFixture(t *testing.T, client *database.Client) {
	t.Helper()
	ctx := context.Background()

	s, err := sqlstore.NewSeeder(client)
	require.NoError(t, err)
	require.NoError(t, s.InsertAreas(ctx, []domain.Area{{ID: 1, Name: "Thessaly"}, {ID: 2, Name: "Epirus"}}))
	require.NoError(t, s.InsertHerds(ctx, []domain.Herd{
		{ID: 10, Name: "Chios herd", BreedID: 2, AreaID: 1},
		{ID: 20, Name: "Lacaune herd", BreedID: 3},
	}))
	require.NoError(t, s.InsertRecords(ctx, fixtureRecords))
}

type queryCall struct {
	name string
	err  error
}

// spyMetrics records query names in call order.
type spyMetrics struct {
	mu      sync.Mutex
	queries []queryCall
}

func (s *spyMetrics) RecordQuery(_ context.Context, query string, _ time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, queryCall{name: query, err: err})
}

func (s *spyMetrics) RecordPage(context.Context, string, string) {}

func (s *spyMetrics) Close(context.Context) error { return nil }
