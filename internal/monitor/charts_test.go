package monitor

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zonwering-data/fshade.report/internal/shading"
	"github.com/zonwering-data/fshade.report/internal/shadingdb"
	"github.com/zonwering-data/fshade.report/internal/testutil"
)

func newTestCharts(t *testing.T) (*Charts, string) {
	t.Helper()
	store, err := shadingdb.NewStore(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	batch := &shading.BatchResult{Results: []shading.Result{
		{WindowIndex: 0, Classification: shading.Overhang, Fsh: 1.0, ShadingAngle: 65, ShadingBlocked: 25, Dominant: shading.DominantShading},
		{WindowIndex: 1, Classification: shading.ContextObstruction, Fsh: 0.35, ContextAngle: 55, ContextBlocked: 55, ShadingAngle: 90, Dominant: shading.DominantContext},
	}}
	runID, err := store.SaveRun(6, shading.ModeHeating, batch, 1.0, "")
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	return NewCharts(store), runID
}

func serveChart(t *testing.T, c *Charts, path string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	c.RegisterRoutes(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestFshBarChart(t *testing.T) {
	c, runID := newTestCharts(t)
	rec := serveChart(t, c, "/charts/runs/"+runID+"/fsh")

	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Fsh reduction factors") {
		t.Error("chart title missing from page")
	}
	if !strings.Contains(body, "W0") || !strings.Contains(body, "W1") {
		t.Error("window labels missing from page")
	}
}

func TestAngleScatterChart(t *testing.T) {
	c, runID := newTestCharts(t)
	rec := serveChart(t, c, "/charts/runs/"+runID+"/angles")

	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Context vs shading blockage") {
		t.Error("chart title missing from page")
	}
}

func TestRunCharts_Errors(t *testing.T) {
	c, runID := newTestCharts(t)

	rec := serveChart(t, c, "/charts/runs/no-such-run/fsh")
	testutil.AssertStatusCode(t, rec.Code, http.StatusNotFound)

	rec = serveChart(t, c, "/charts/runs/"+runID+"/bogus")
	testutil.AssertStatusCode(t, rec.Code, http.StatusNotFound)

	rec = serveChart(t, c, "/charts/runs/"+runID)
	testutil.AssertStatusCode(t, rec.Code, http.StatusNotFound)

	mux := http.NewServeMux()
	c.RegisterRoutes(mux)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/charts/runs/"+runID+"/fsh", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusMethodNotAllowed)
}

func TestSplitRunChartPath(t *testing.T) {
	tests := []struct {
		path  string
		runID string
		kind  string
		ok    bool
	}{
		{"/charts/runs/abc/fsh", "abc", "fsh", true},
		{"/charts/runs/abc/angles", "abc", "angles", true},
		{"/charts/runs/abc", "", "", false},
		{"/charts/runs/abc/", "", "", false},
		{"/charts/runs/", "", "", false},
		{"/charts/runs//fsh", "", "", false},
	}
	for _, tc := range tests {
		runID, kind, ok := splitRunChartPath(tc.path)
		if runID != tc.runID || kind != tc.kind || ok != tc.ok {
			t.Errorf("splitRunChartPath(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tc.path, runID, kind, ok, tc.runID, tc.kind, tc.ok)
		}
	}
}
