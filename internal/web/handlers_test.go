package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/herdstats/internal/domain"
	"github.com/emiliopalmerini/herdstats/internal/report"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

var lactationRows = []domain.PeriodStats{
	{Key: 1, AvgDays: 180, AvgMilk: 150, StdMilk: 20, StdDays: 15, CountBirths: 12, AvgBirths: 1.4},
	{Key: 2, AvgDays: 190, AvgMilk: 170, StdMilk: 25, StdDays: 12, CountBirths: 9, AvgBirths: 1.6},
}

func testLookups() *report.MockLookupRepository {
	return &report.MockLookupRepository{
		BreedsFunc: func(context.Context) ([]domain.Breed, error) {
			return []domain.Breed{{ID: 2, Name: "Chios"}, {ID: 1, Name: "Unknown"}}, nil
		},
		YearsFunc: func(context.Context) ([]int, error) { return []int{2010, 2011, 2012}, nil },
		AreasFunc: func(context.Context) ([]domain.Area, error) {
			return []domain.Area{{ID: 1, Name: "Thessaly"}}, nil
		},
	}
}

func testServer(t *testing.T, prod *report.MockProductionRepository, lookups *report.MockLookupRepository, db Pinger) http.Handler {
	t.Helper()
	if prod == nil {
		prod = &report.MockProductionRepository{}
	}
	if lookups == nil {
		lookups = testLookups()
	}
	svc := report.NewService(prod, lookups, report.Options{UnknownBreedID: domain.DefaultUnknownBreedID})
	return NewServer(svc, db, Options{}).Handler()
}

func lactationRepo() *report.MockProductionRepository {
	return &report.MockProductionRepository{
		LactationStatsFunc: func(context.Context, domain.FilterSelection) ([]domain.PeriodStats, error) {
			return lactationRows, nil
		},
	}
}

func get(t *testing.T, h http.Handler, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, testServer(t, nil, nil, fakePinger{}), "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = get(t, testServer(t, nil, nil, fakePinger{err: errors.New("down")}), "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestIndex(t *testing.T) {
	h := testServer(t, nil, nil, nil)

	rec := get(t, h, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<!DOCTYPE html>")
	assert.Contains(t, rec.Body.String(), "Thessaly")

	rec = get(t, h, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPage_FullAndFragment(t *testing.T) {
	h := testServer(t, lactationRepo(), nil, nil)

	full := get(t, h, "/lactation?breed=Chios", nil)
	require.Equal(t, http.StatusOK, full.Code)
	assert.Contains(t, full.Body.String(), "<!DOCTYPE html>")
	assert.Contains(t, full.Body.String(), "<svg")

	frag := get(t, h, "/lactation?breed=Chios", map[string]string{"HX-Request": "true"})
	require.Equal(t, http.StatusOK, frag.Code)
	assert.False(t, strings.HasPrefix(frag.Body.String(), "<!DOCTYPE html>"))
	assert.Contains(t, frag.Body.String(), "Production by lactation period")
	assert.Equal(t, "HX-Request", frag.Header().Get("Vary"))
}

func TestPage_ValidationNotice(t *testing.T) {
	h := testServer(t, &report.MockProductionRepository{}, nil, nil)

	rec := get(t, h, "/yearly?breed=Chios&lact_from=5&lact_to=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "notice-error")
}

func TestPage_RepositoryError(t *testing.T) {
	h := testServer(t, &report.MockProductionRepository{
		MonthlyStatsFunc: func(context.Context, domain.FilterSelection) ([]domain.PeriodStats, error) {
			return nil, errors.New("connection reset")
		},
	}, nil, nil)

	rec := get(t, h, "/monthly", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestAPIPage(t *testing.T) {
	h := testServer(t, lactationRepo(), nil, nil)

	rec := get(t, h, "/api/pages/lactation?breed=Chios&year_from=2011", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var page report.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, report.KindLactation, page.Kind)
	assert.Equal(t, "Chios", page.Form.Breed)
	require.NotNil(t, page.Form.Year)
	assert.Equal(t, 2011, page.Form.Year.From)
	assert.Len(t, page.Charts, 2)
	assert.Len(t, page.Data.Rows, 2)

	rec = get(t, h, "/api/pages/weekly", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPILookups(t *testing.T) {
	rec := get(t, testServer(t, nil, nil, nil), "/api/lookups", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got report.Lookups
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []int{2010, 2011, 2012}, got.Years)
	assert.Len(t, got.Breeds, 2)
}

func TestChart(t *testing.T) {
	h := testServer(t, lactationRepo(), nil, nil)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{name: "svg", target: "/charts/lactation/milk.svg?breed=Chios", status: http.StatusOK},
		{name: "custom width", target: "/charts/lactation/days.svg?width=400", status: http.StatusOK},
		{name: "missing extension", target: "/charts/lactation/milk", status: http.StatusNotFound},
		{name: "unknown chart", target: "/charts/lactation/classes.svg", status: http.StatusNotFound},
		{name: "unknown page", target: "/charts/weekly/milk.svg", status: http.StatusNotFound},
		{name: "invalid filter", target: "/charts/lactation/milk.svg?year_from=2012&year_to=2010", status: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target, nil)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
				assert.Contains(t, rec.Body.String(), "<svg")
			}
		})
	}
}

func TestChartWidth(t *testing.T) {
	tests := map[string]int{
		"":      720,
		"400":   400,
		"abc":   720,
		"50":    720,
		"90000": 720,
	}
	for raw, want := range tests {
		r := httptest.NewRequest(http.MethodGet, "/charts/yearly/production.svg?width="+raw, nil)
		assert.Equal(t, want, chartWidth(r), "width=%q", raw)
	}
}

func TestStatic(t *testing.T) {
	rec := get(t, testServer(t, nil, nil, nil), "/static/style.css", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
}
