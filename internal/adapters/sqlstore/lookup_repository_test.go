package sqlstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/herdstats/internal/adapters/sqlstore"
	"github.com/emiliopalmerini/herdstats/internal/domain"
)

func TestLookupRepository(t *testing.T) {
	ctx := context.Background()
	client := testClient(t)
	seedFixture(t, client)

	repo, err := sqlstore.NewLookupRepository(client, nil)
	require.NoError(t, err)

	breeds, err := repo.Breeds(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Breed{
		{ID: 2, Name: "Chios"},
		{ID: 4, Name: "Frizarta"},
		{ID: 5, Name: "Karagouniko"},
		{ID: 3, Name: "Lacaune"},
		{ID: 1, Name: "Unknown"},
	}, breeds)

	years, err := repo.Years(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2015, 2016, 2017}, years)

	areas, err := repo.Areas(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Area{{ID: 2, Name: "Epirus"}, {ID: 1, Name: "Thessaly"}}, areas)
}

func TestLookupRepository_YearsEmpty(t *testing.T) {
	repo, err := sqlstore.NewLookupRepository(testClient(t), nil)
	require.NoError(t, err)

	years, err := repo.Years(context.Background())
	require.NoError(t, err)
	assert.Empty(t, years)
}
