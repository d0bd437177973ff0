package templates

import (
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/emiliopalmerini/herdstats/internal/report"
)

// htmlWriter keeps the first write error so component bodies can write
// without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// rawf formats with escaped string arguments.
func (h *htmlWriter) rawf(format string, args ...any) {
	for i, a := range args {
		if s, ok := a.(string); ok {
			args[i] = templ.EscapeString(s)
		}
	}
	h.raw(fmt.Sprintf(format, args...))
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func pagePath(kind report.Kind) string {
	return "/" + string(kind)
}

// chartURL addresses a single chart of a page with the same filters.
func chartURL(kind report.Kind, id string, query url.Values) templ.SafeURL {
	u := "/charts/" + string(kind) + "/" + url.PathEscape(id) + ".svg"
	if q := query.Encode(); q != "" {
		u += "?" + q
	}
	return templ.SafeURL(u)
}

func apiURL(kind report.Kind, query url.Values) templ.SafeURL {
	u := "/api/pages/" + string(kind)
	if q := query.Encode(); q != "" {
		u += "?" + q
	}
	return templ.SafeURL(u)
}
