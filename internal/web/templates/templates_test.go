package templates

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/herdstats/internal/chart"
	"github.com/emiliopalmerini/herdstats/internal/domain"
	"github.com/emiliopalmerini/herdstats/internal/report"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestPageBody_Notice(t *testing.T) {
	minDays := 90
	p := &report.Page{
		Kind:  report.KindYearly,
		Title: report.KindYearly.Title(),
		Form: report.Form{
			Breeds:     []string{"Chios", "<Lacaune>"},
			Breed:      "Chios",
			Lactations: []int{1, 2, 3},
			Lactation:  &domain.Range{From: 3, To: 1},
			MinDays:    &minDays,
		},
		Notice: &report.Notice{Level: report.LevelError, Message: "lactation period: 'from' (3) must be less than or equal to 'to' (1)"},
	}

	out := render(t, PageBody(p, nil))
	assert.Contains(t, out, `class="notice notice-error"`)
	assert.Contains(t, out, "&lt;Lacaune&gt;", "option labels are escaped")
	assert.Contains(t, out, `<option value="Chios" selected>`)
	assert.Contains(t, out, `name="min_days" min="0" max="365" value="90"`)
	assert.NotContains(t, out, "<table")
	assert.NotContains(t, out, "<svg")
}

func TestPageBody_Results(t *testing.T) {
	query := url.Values{"breed": {"Chios"}}
	p := &report.Page{
		Kind:    report.KindLactation,
		Title:   report.KindLactation.Title(),
		Form:    report.Form{Breeds: []string{"Chios"}, Breed: "Chios"},
		Summary: []report.Indicator{{Label: "Animals", Value: 12}},
		Charts: []chart.Spec{{
			ID: "milk", Title: "Milk",
			Series: []chart.Series{{Name: "Milk", Kind: chart.KindMarkers, X: []float64{1, 2}, Y: []float64{150, 160}, ErrorY: []float64{10, 12}}},
		}},
		Data: &report.Table{Columns: []string{"Lactation period", "Avg milk (kg)"}, Rows: [][]any{{1, 150.0}, {2, 160.5}}},
	}

	out := render(t, PageBody(p, query))
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, `href="/charts/lactation/milk.svg?breed=Chios"`)
	assert.Contains(t, out, `href="/api/pages/lactation?breed=Chios"`)
	assert.Contains(t, out, "<td>160.50</td>")
	assert.Contains(t, out, `<span class="value">12.00</span>`)
}

func TestLayout(t *testing.T) {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := w.Write([]byte("BODY"))
		return err
	})

	out := render(t, Layout("Milk yield classes", Nav(report.KindClassification), body))
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `<a href="/classification" class="active">Milk yield classes</a>`)
	assert.Contains(t, out, `<a href="/yearly">Production by year</a>`)
	assert.NotContains(t, out, "&#34;")
	assert.Contains(t, out, `<main id="page-body">BODY</main>`)
}

func TestIndex(t *testing.T) {
	out := render(t, Index(IndexData{
		Breeds: []domain.Breed{{ID: 2, Name: "Chios"}},
		Years:  []int{2010, 2020},
		Areas:  []domain.Area{{ID: 1, Name: "Thessaly"}},
	}))
	assert.Contains(t, out, "2010 to 2020")
	assert.Contains(t, out, "<li>Chios</li>")
	assert.Contains(t, out, "<li>Thessaly</li>")
	assert.Contains(t, out, `href="/monthly"`)
}
