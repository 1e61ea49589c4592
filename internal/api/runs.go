package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/zonwering-data/fshade.report/internal/httputil"
	"github.com/zonwering-data/fshade.report/internal/report"
	"github.com/zonwering-data/fshade.report/internal/shading"
	"github.com/zonwering-data/fshade.report/internal/shadingdb"
)

// RunDetail is the GET /api/runs/{id} response.
type RunDetail struct {
	Run     shadingdb.Run    `json:"run"`
	Results []shading.Result `json:"results"`
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	if s.store == nil {
		httputil.NotFound(w, "run persistence disabled")
		return
	}

	limit := 50
	if lq := r.URL.Query().Get("limit"); lq != "" {
		v, err := strconv.Atoi(lq)
		if err != nil || v < 1 {
			httputil.BadRequest(w, fmt.Sprintf("invalid limit %q", lq))
			return
		}
		limit = v
	}

	runs, err := s.store.ListRuns(limit)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to list runs: %v", err))
		return
	}
	if runs == nil {
		runs = []shadingdb.Run{}
	}
	httputil.WriteJSONOK(w, runs)
}

// runHandler dispatches /api/runs/{id} and /api/runs/{id}/report.
func (s *Server) runHandler(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		httputil.NotFound(w, "run persistence disabled")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/runs/")
	runID, sub, _ := strings.Cut(rest, "/")
	if runID == "" {
		httputil.NotFound(w, "missing run id")
		return
	}

	switch {
	case sub == "" && r.Method == http.MethodGet:
		s.getRun(w, runID)
	case sub == "" && r.Method == http.MethodDelete:
		s.deleteRun(w, runID)
	case sub == "report" && r.Method == http.MethodGet:
		s.runReport(w, runID)
	case sub == "" || sub == "report":
		httputil.MethodNotAllowed(w)
	default:
		httputil.NotFound(w, "not found")
	}
}

func (s *Server) loadRun(w http.ResponseWriter, runID string) (*shadingdb.Run, []shading.Result, bool) {
	run, err := s.store.GetRun(runID)
	if errors.Is(err, sql.ErrNoRows) {
		httputil.NotFound(w, "no such run")
		return nil, nil, false
	}
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to load run: %v", err))
		return nil, nil, false
	}
	results, err := s.store.GetRunResults(runID)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to load run results: %v", err))
		return nil, nil, false
	}
	return run, results, true
}

func (s *Server) getRun(w http.ResponseWriter, runID string) {
	run, results, ok := s.loadRun(w, runID)
	if !ok {
		return
	}
	if results == nil {
		results = []shading.Result{}
	}
	httputil.WriteJSONOK(w, RunDetail{Run: *run, Results: results})
}

func (s *Server) deleteRun(w http.ResponseWriter, runID string) {
	if err := s.store.DeleteRun(runID); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to delete run: %v", err))
		return
	}
	httputil.WriteJSONOK(w, map[string]string{"deleted": runID})
}

// runReport re-renders the stored run as the text report.
func (s *Server) runReport(w http.ResponseWriter, runID string) {
	run, results, ok := s.loadRun(w, runID)
	if !ok {
		return
	}

	text := report.Render(report.Input{
		Windows:   run.WindowCount,
		Month:     run.Month,
		Mode:      shading.ParseCalcMode(run.CalcMode),
		Threshold: s.cfg.GetSignificanceDeg(),
	}, results)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}
