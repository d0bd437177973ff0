package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/emiliopalmerini/herdstats/internal/chart"
	"github.com/emiliopalmerini/herdstats/internal/shared/middleware"
)

const maxChartWidth = 2000

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		s.logger.Error("render template", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed",
		zap.String("request_id", middleware.GetRequestID(r)),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// chartWidth reads the width query parameter, falling back to the default
// for missing or out of range values.
func chartWidth(r *http.Request) int {
	w, err := strconv.Atoi(r.URL.Query().Get("width"))
	if err != nil || w < 200 || w > maxChartWidth {
		return chart.DefaultWidth
	}
	return w
}

// chartID strips the .svg extension from a chart file name.
func chartID(file string) (string, bool) {
	id, ok := strings.CutSuffix(file, ".svg")
	return id, ok && id != ""
}
