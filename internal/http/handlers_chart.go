package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/wcharczuk/go-chart/v2"

	"budgetview/internal/core"
	applog "budgetview/internal/log"
)

var errNoChartData = errors.New("no chart data")

func chartCacheKey(group string) string {
	if group == "" {
		return "overview"
	}
	return "group:" + group
}

// handleChart renders the overview pie chart as PNG. With ?group= it breaks
// the selected group down by category, mirroring the JSON chart dataset.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	group := selectedGroup(r)
	key := chartCacheKey(group)

	if png, ok := s.chartCache.Get(key); ok {
		servePNG(w, png)
		return
	}

	snap, err := s.loader.Load(r.Context())
	if err != nil {
		writeLoadError(w, r, err)
		return
	}

	summary := core.Summarize(snap.Groups, snap.Spending.ByCategory, s.excludedGroups, group, s.now())
	png, err := s.renderPie(summary)
	if err != nil {
		if errors.Is(err, errNoChartData) {
			http.Error(w, "no chart data", http.StatusNotFound)
			return
		}
		slog.ErrorContext(r.Context(), "Chart rendering failed", applog.FieldError, err, applog.FieldGroup, group)
		http.Error(w, "chart rendering failed", http.StatusInternalServerError)
		return
	}

	s.chartCache.Set(key, png)
	servePNG(w, png)
}

// renderPie draws one labeled slice per chart point. Slices without a
// budget are dropped; a pie of zeros cannot be drawn.
func (s *Server) renderPie(summary core.Summary) ([]byte, error) {
	var total core.Milliunits
	for _, p := range summary.ChartData {
		total += p.Value
	}

	values := make([]chart.Value, 0, len(summary.ChartData))
	for _, p := range summary.ChartData {
		if p.Value <= 0 {
			continue
		}
		share := float64(p.Value) / float64(total) * 100
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s (%.1f%%)", p.Name, s.formatter.Format(p.Value), share),
			Value: float64(p.Value),
		})
	}
	if len(values) == 0 {
		return nil, errNoChartData
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 600,
		Background: chart.Style{
			Padding:   chart.Box{Top: 30, Left: 30, Right: 30, Bottom: 30},
			FillColor: chart.ColorWhite,
		},
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie chart: %w", err)
	}
	return buf.Bytes(), nil
}

func servePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(png); err != nil {
		slog.Error("Failed writing chart response", applog.FieldError, err)
	}
}
