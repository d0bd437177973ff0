package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps body in the full HTML document with navigation.
func Layout(title string, nav []NavItem, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.rawf(`<title>%s · herdstats</title>`, title)
		h.raw(`<link rel="stylesheet" href="/static/style.css">`)
		h.raw(`<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>`)
		h.raw(`</head><body><header><a class="brand" href="/">herdstats</a><nav>`)
		for _, item := range nav {
			if item.Active {
				h.rawf(`<a href="%s" class="active">%s</a>`, pagePath(item.Kind), item.Title)
				continue
			}
			h.rawf(`<a href="%s">%s</a>`, pagePath(item.Kind), item.Title)
		}
		h.raw(`</nav></header><main id="page-body">`)
		if h.err != nil {
			return h.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</main></body></html>`)
		return h.err
	})
}
