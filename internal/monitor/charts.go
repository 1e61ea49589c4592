// Package monitor renders stored classification runs as standalone ECharts
// HTML pages. Debugging-only endpoints; review a run visually without any
// frontend build.
package monitor

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/zonwering-data/fshade.report/internal/httputil"
	"github.com/zonwering-data/fshade.report/internal/shading"
	"github.com/zonwering-data/fshade.report/internal/shadingdb"
)

// Charts serves chart pages for runs in a store.
type Charts struct {
	store *shadingdb.Store
}

// NewCharts builds the chart handler set.
func NewCharts(store *shadingdb.Store) *Charts {
	return &Charts{store: store}
}

// RegisterRoutes attaches the chart endpoints to mux.
func (c *Charts) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/charts/runs/", c.handleRunCharts)
}

// handleRunCharts dispatches /charts/runs/{id}/fsh and
// /charts/runs/{id}/angles.
func (c *Charts) handleRunCharts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	runID, kind, ok := splitRunChartPath(r.URL.Path)
	if !ok {
		httputil.NotFound(w, "unknown chart path")
		return
	}

	run, err := c.store.GetRun(runID)
	if errors.Is(err, sql.ErrNoRows) {
		httputil.NotFound(w, "no such run")
		return
	}
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to load run: %v", err))
		return
	}
	results, err := c.store.GetRunResults(runID)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to load run results: %v", err))
		return
	}

	switch kind {
	case "fsh":
		c.renderFshBar(w, run, results)
	case "angles":
		c.renderAngleScatter(w, run, results)
	default:
		httputil.NotFound(w, "unknown chart kind")
	}
}

// splitRunChartPath parses "/charts/runs/{id}/{kind}".
func splitRunChartPath(path string) (runID, kind string, ok bool) {
	const prefix = "/charts/runs/"
	if len(path) <= len(prefix) {
		return "", "", false
	}
	rest := path[len(prefix):]
	for i := 0; i < len(rest); i++ {
		if rest[i] == '/' {
			if i == 0 || i == len(rest)-1 {
				return "", "", false
			}
			return rest[:i], rest[i+1:], true
		}
	}
	return "", "", false
}

// renderFshBar plots the per-window reduction factor, coloured by window
// index order.
func (c *Charts) renderFshBar(w http.ResponseWriter, run *shadingdb.Run, results []shading.Result) {
	labels := make([]string, 0, len(results))
	values := make([]opts.BarData, 0, len(results))
	for _, r := range results {
		labels = append(labels, fmt.Sprintf("W%d", r.WindowIndex))
		values = append(values, opts.BarData{
			Value:   r.Fsh,
			Tooltip: &opts.Tooltip{Show: opts.Bool(true)},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Fsh per window", Theme: "dark", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Fsh reduction factors",
			Subtitle: fmt.Sprintf("run=%s month=%d mode=%s windows=%d", run.ID, run.Month, run.CalcMode, run.WindowCount),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 1, Name: "Fsh"}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("fsh", values)

	writeChart(w, bar.Render)
}

// renderAngleScatter plots context blockage against shading blockage per
// window, the plane the classification decision lives in.
func (c *Charts) renderAngleScatter(w http.ResponseWriter, run *shadingdb.Run, results []shading.Result) {
	data := make([]opts.ScatterData, 0, len(results))
	for _, r := range results {
		data = append(data, opts.ScatterData{
			Value: []interface{}{r.ContextBlocked, r.ShadingBlocked, string(r.Classification)},
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Blockage angles", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Context vs shading blockage",
			Subtitle: fmt.Sprintf("run=%s points=%d", run.ID, len(data)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: 90, Name: "context blocked (deg)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 90, Name: "shading blocked (deg)", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("windows", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))

	writeChart(w, scatter.Render)
}

func writeChart(w http.ResponseWriter, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
