package templates

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/emiliopalmerini/herdstats/internal/chart"
	"github.com/emiliopalmerini/herdstats/internal/report"
	"github.com/emiliopalmerini/herdstats/internal/util"
)

// PageBody renders a computed page: filter form, notice or results.
// query is echoed into chart and API links.
func PageBody(p *report.Page, query url.Values) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.rawf(`<h1>%s</h1>`, p.Title)
		filterForm(h, p)

		if p.Notice != nil {
			h.rawf(`<div class="notice notice-%s" role="alert">%s</div>`, string(p.Notice.Level), p.Notice.Message)
			return h.err
		}

		summary(h, p.Summary)
		for _, spec := range p.Charts {
			inlineChart(h, p.Kind, spec, query)
		}
		if p.Data != nil {
			dataTable(h, p.Data)
		}
		h.rawf(`<p class="export"><a href="%s">JSON</a></p>`, string(apiURL(p.Kind, query)))
		return h.err
	})
}

func filterForm(h *htmlWriter, p *report.Page) {
	path := pagePath(p.Kind)
	h.rawf(`<form class="filters" method="get" action="%s" hx-get="%s" hx-target="#page-body" hx-push-url="true">`, path, path)

	h.raw(`<label>Breed <select name="breed">`)
	for _, name := range p.Form.Breeds {
		option(h, name, name, name == p.Form.Breed)
	}
	h.raw(`</select></label>`)

	if r := p.Form.Lactation; r != nil {
		intSelect(h, "Lactation from", report.ParamLactFrom, p.Form.Lactations, r.From)
		intSelect(h, "to", report.ParamLactTo, p.Form.Lactations, r.To)
	}
	if r := p.Form.Year; r != nil {
		intSelect(h, "Year from", report.ParamYearFrom, p.Form.Years, r.From)
		intSelect(h, "to", report.ParamYearTo, p.Form.Years, r.To)
	}
	if d := p.Form.MinDays; d != nil {
		h.rawf(`<label>Minimum lactation days <input type="number" name="%s" min="0" max="365" value="%s"></label>`,
			report.ParamMinDays, strconv.Itoa(*d))
	}
	h.raw(`<button type="submit">Apply</button></form>`)
}

func option(h *htmlWriter, value, label string, selected bool) {
	if selected {
		h.rawf(`<option value="%s" selected>%s</option>`, value, label)
		return
	}
	h.rawf(`<option value="%s">%s</option>`, value, label)
}

func intSelect(h *htmlWriter, label, name string, options []int, selected int) {
	h.rawf(`<label>%s <select name="%s">`, label, name)
	for _, o := range options {
		s := strconv.Itoa(o)
		option(h, s, s, o == selected)
	}
	h.raw(`</select></label>`)
}

func summary(h *htmlWriter, indicators []report.Indicator) {
	if len(indicators) == 0 {
		return
	}
	h.raw(`<section class="summary">`)
	for _, ind := range indicators {
		h.rawf(`<div class="indicator"><span class="label">%s</span><span class="value">%s</span>`, ind.Label, util.FormatFloat(ind.Value))
		if ind.Unit != "" {
			h.rawf(`<span class="unit">%s</span>`, ind.Unit)
		}
		h.raw(`</div>`)
	}
	h.raw(`</section>`)
}

func inlineChart(h *htmlWriter, kind report.Kind, spec chart.Spec, query url.Values) {
	h.rawf(`<figure class="chart" id="chart-%s">`, spec.ID)
	var buf bytes.Buffer
	if err := chart.Render(&buf, spec, ChartWidth); err != nil {
		h.rawf(`<figcaption>%s: chart unavailable</figcaption>`, spec.Title)
	} else {
		h.raw(buf.String())
		h.rawf(`<figcaption><a href="%s">SVG</a></figcaption>`, string(chartURL(kind, spec.ID, query)))
	}
	h.raw(`</figure>`)
}

func dataTable(h *htmlWriter, t *report.Table) {
	h.raw(`<table class="data"><thead><tr>`)
	for _, c := range t.Columns {
		h.rawf(`<th>%s</th>`, c)
	}
	h.raw(`</tr></thead><tbody>`)
	for _, row := range t.Rows {
		h.raw(`<tr>`)
		for _, cell := range row {
			h.rawf(`<td>%s</td>`, util.FormatCell(cell))
		}
		h.raw(`</tr>`)
	}
	h.raw(`</tbody></table>`)
}
