package web

import (
	"bytes"
	"net/http"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/herdstats/internal/chart"
	"github.com/emiliopalmerini/herdstats/internal/report"
	"github.com/emiliopalmerini/herdstats/internal/shared/middleware"
	"github.com/emiliopalmerini/herdstats/internal/web/templates"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	lookups, err := s.service.Lookups(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	body := templates.Index(templates.IndexData{
		Breeds: lookups.Breeds,
		Years:  lookups.Years,
		Areas:  lookups.Areas,
	})
	if middleware.IsHTMX(r) {
		s.render(w, r, body)
		return
	}
	s.render(w, r, templates.Layout("Overview", templates.Nav(""), body))
}

func (s *Server) handlePage(kind report.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := report.RequestFromValues(r.URL.Query())
		page, err := s.service.Render(r.Context(), kind, req)
		if err != nil {
			s.serverError(w, r, err)
			return
		}

		body := templates.PageBody(page, req.Values())
		if middleware.IsHTMX(r) {
			s.render(w, r, body)
			return
		}
		s.render(w, r, templates.Layout(page.Title, templates.Nav(kind), body))
	}
}

// pageFromPath resolves the {page} wildcard and computes it.
func (s *Server) pageFromPath(w http.ResponseWriter, r *http.Request) (*report.Page, bool) {
	kind, err := report.ParseKind(r.PathValue("page"))
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	page, err := s.service.Render(r.Context(), kind, report.RequestFromValues(r.URL.Query()))
	if err != nil {
		s.serverError(w, r, err)
		return nil, false
	}
	return page, true
}

func (s *Server) handleAPIPage(w http.ResponseWriter, r *http.Request) {
	page, ok := s.pageFromPath(w, r)
	if !ok {
		return
	}
	if err := writeJSON(w, http.StatusOK, page); err != nil {
		s.logger.Warn("encode page", zap.Error(err))
	}
}

func (s *Server) handleAPILookups(w http.ResponseWriter, r *http.Request) {
	lookups, err := s.service.Lookups(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, lookups)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	id, ok := chartID(r.PathValue("file"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	page, ok := s.pageFromPath(w, r)
	if !ok {
		return
	}
	if page.Notice != nil {
		http.Error(w, page.Notice.Message, http.StatusUnprocessableEntity)
		return
	}
	spec, ok := chart.Find(page.Charts, id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, spec, chartWidth(r)); err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = buf.WriteTo(w)
}
