package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zonwering-data/fshade.report/internal/config"
	"github.com/zonwering-data/fshade.report/internal/shading"
	"github.com/zonwering-data/fshade.report/internal/shadingdb"
	"github.com/zonwering-data/fshade.report/internal/testutil"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := shadingdb.NewStore(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewServer(shading.NewClassifier(shading.Params{}), store, config.EmptyEngineConfig())
}

func serve(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(rec, req)
	return rec
}

// southFacadeRequest is a two-window scene: one window under an awning,
// one clear.
func southFacadeRequest(month int) ClassifyRequest {
	window := MeshPayload{
		Vertices: testutil.QuadVertices(-0.75, 0.75, 0, 0, 2),
		Faces:    testutil.QuadFaces(),
	}
	awning := MeshPayload{
		Vertices: [][3]float64{{-1, 0, 2}, {1, 0, 2}, {1, -1, 2}, {-1, -1, 2}},
		Faces:    testutil.QuadFaces(),
	}
	return ClassifyRequest{
		Month:   month,
		Windows: []MeshPayload{window, window},
		Shading: []MeshPayload{awning},
	}
}

func TestClassifyEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := serve(t, s, testutil.NewJSONRequest(t, http.MethodPost, "/api/classify", southFacadeRequest(6)))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var resp ClassifyResponse
	testutil.DecodeJSONBody(t, rec, &resp)

	if len(resp.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(resp.Results))
	}
	if resp.Results[0].Classification != shading.Overhang {
		t.Errorf("window 0 = %s, want %s", resp.Results[0].Classification, shading.Overhang)
	}
	if resp.Results[0].Orientation != shading.South {
		t.Errorf("window 0 orientation = %s, want South", resp.Results[0].Orientation)
	}
	if resp.Results[1].Classification != shading.MinimalObstruction {
		t.Errorf("window 1 = %s, want %s", resp.Results[1].Classification, shading.MinimalObstruction)
	}
	if resp.RunID == "" {
		t.Error("run not persisted")
	}
	if !strings.Contains(resp.Report, "SUMMARY") {
		t.Error("report text missing from response")
	}
	if resp.CalcMode != "heating" {
		t.Errorf("calc mode = %q, want heating", resp.CalcMode)
	}
}

func TestClassifyEndpoint_DefaultMonth(t *testing.T) {
	s := newTestServer(t)

	req := southFacadeRequest(0) // omitted month falls back to the configured default
	rec := serve(t, s, testutil.NewJSONRequest(t, http.MethodPost, "/api/classify", req))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var resp ClassifyResponse
	testutil.DecodeJSONBody(t, rec, &resp)
	if resp.Month != 1 {
		t.Errorf("month = %d, want the default 1", resp.Month)
	}
}

func TestClassifyEndpoint_Rejections(t *testing.T) {
	s := newTestServer(t)

	rec := serve(t, s, testutil.NewJSONRequest(t, http.MethodGet, "/api/classify", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusMethodNotAllowed)

	rec = serve(t, s, testutil.NewJSONRequest(t, http.MethodPost, "/api/classify", ClassifyRequest{Month: 13, Windows: southFacadeRequest(6).Windows}))
	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)

	rec = serve(t, s, testutil.NewJSONRequest(t, http.MethodPost, "/api/classify", ClassifyRequest{Month: 6}))
	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)

	rec = serve(t, s, httptest.NewRequest(http.MethodPost, "/api/classify", strings.NewReader(`{"month":`)))
	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
}

func TestClassifyEndpoint_UnusableWindowYieldsErrorResult(t *testing.T) {
	s := newTestServer(t)

	req := ClassifyRequest{
		Month:   6,
		Windows: []MeshPayload{{}}, // no geometry
	}
	rec := serve(t, s, testutil.NewJSONRequest(t, http.MethodPost, "/api/classify", req))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var resp ClassifyResponse
	testutil.DecodeJSONBody(t, rec, &resp)
	if len(resp.Results) != 1 || resp.Results[0].Classification != shading.ClassError {
		t.Errorf("results = %+v, want one Error result", resp.Results)
	}
}

func TestRunEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := serve(t, s, testutil.NewJSONRequest(t, http.MethodPost, "/api/classify", southFacadeRequest(6)))
	var resp ClassifyResponse
	testutil.DecodeJSONBody(t, rec, &resp)
	if resp.RunID == "" {
		t.Fatal("no run ID")
	}

	// Listing includes the new run.
	rec = serve(t, s, testutil.NewJSONRequest(t, http.MethodGet, "/api/runs", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	var runs []shadingdb.Run
	testutil.DecodeJSONBody(t, rec, &runs)
	if len(runs) != 1 || runs[0].ID != resp.RunID {
		t.Errorf("runs = %+v", runs)
	}

	// Detail returns metadata plus results.
	rec = serve(t, s, testutil.NewJSONRequest(t, http.MethodGet, "/api/runs/"+resp.RunID, nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	var detail RunDetail
	testutil.DecodeJSONBody(t, rec, &detail)
	if detail.Run.Month != 6 || len(detail.Results) != 2 {
		t.Errorf("detail = %+v", detail)
	}

	// Stored report re-renders.
	rec = serve(t, s, testutil.NewJSONRequest(t, http.MethodGet, "/api/runs/"+resp.RunID+"/report", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "SUMMARY") {
		t.Error("stored report missing summary")
	}

	// Delete removes it.
	rec = serve(t, s, testutil.NewJSONRequest(t, http.MethodDelete, "/api/runs/"+resp.RunID, nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	rec = serve(t, s, testutil.NewJSONRequest(t, http.MethodGet, "/api/runs/"+resp.RunID, nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusNotFound)
}

func TestRunEndpoints_Errors(t *testing.T) {
	s := newTestServer(t)

	rec := serve(t, s, testutil.NewJSONRequest(t, http.MethodGet, "/api/runs/no-such-run", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusNotFound)

	rec = serve(t, s, testutil.NewJSONRequest(t, http.MethodGet, "/api/runs?limit=bogus", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)

	rec = serve(t, s, testutil.NewJSONRequest(t, http.MethodPost, "/api/runs/some-run", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusMethodNotAllowed)
}

func TestRunEndpoints_NoStore(t *testing.T) {
	s := NewServer(shading.NewClassifier(shading.Params{}), nil, nil)

	rec := serve(t, s, testutil.NewJSONRequest(t, http.MethodGet, "/api/runs", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusNotFound)

	// Classification still works without persistence.
	rec = serve(t, s, testutil.NewJSONRequest(t, http.MethodPost, "/api/classify", southFacadeRequest(6)))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	var resp ClassifyResponse
	testutil.DecodeJSONBody(t, rec, &resp)
	if resp.RunID != "" {
		t.Errorf("run ID %q without a store", resp.RunID)
	}
}

func TestParamsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := serve(t, s, testutil.NewJSONRequest(t, http.MethodGet, "/api/params", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var params map[string]interface{}
	testutil.DecodeJSONBody(t, rec, &params)
	if params["significance_deg"] != 20.0 {
		t.Errorf("significance = %v", params["significance_deg"])
	}
	if params["calc_mode"] != "heating" {
		t.Errorf("calc mode = %v", params["calc_mode"])
	}
}

func TestHealthAndHome(t *testing.T) {
	s := newTestServer(t)

	rec := serve(t, s, testutil.NewJSONRequest(t, http.MethodGet, "/api/health", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	var health map[string]string
	testutil.DecodeJSONBody(t, rec, &health)
	if health["status"] != "ok" {
		t.Errorf("health = %v", health)
	}

	rec = serve(t, s, testutil.NewJSONRequest(t, http.MethodGet, "/", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Shading Classification Server") {
		t.Errorf("home body = %q", rec.Body.String())
	}

	rec = serve(t, s, testutil.NewJSONRequest(t, http.MethodGet, "/nope", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusNotFound)
}
