package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/emiliopalmerini/herdstats/internal/report"
)

// Index is the landing page: the available pages and the data coverage.
func Index(data IndexData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<h1>Herd production dashboard</h1><ul class="pages">`)
		for _, k := range report.Kinds {
			h.rawf(`<li><a href="%s">%s</a></li>`, pagePath(k), k.Title())
		}
		h.raw(`</ul><section class="coverage"><h2>Data coverage</h2><dl>`)

		h.raw(`<dt>Production years</dt><dd>`)
		if len(data.Years) == 0 {
			h.raw(`none`)
		} else {
			h.text(strconv.Itoa(data.Years[0]) + " to " + strconv.Itoa(data.Years[len(data.Years)-1]))
		}
		h.raw(`</dd><dt>Breeds</dt><dd><ul>`)
		for _, b := range data.Breeds {
			h.rawf(`<li>%s</li>`, b.Name)
		}
		h.raw(`</ul></dd><dt>Areas</dt><dd><ul>`)
		for _, a := range data.Areas {
			h.rawf(`<li>%s</li>`, a.Name)
		}
		h.raw(`</ul></dd></dl></section>`)
		return h.err
	})
}
