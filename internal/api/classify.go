package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/zonwering-data/fshade.report/internal/geom"
	"github.com/zonwering-data/fshade.report/internal/httputil"
	"github.com/zonwering-data/fshade.report/internal/monitoring"
	"github.com/zonwering-data/fshade.report/internal/report"
	"github.com/zonwering-data/fshade.report/internal/shading"
	"github.com/zonwering-data/fshade.report/internal/units"
)

// MeshPayload is the wire form of a triangulated surface.
type MeshPayload struct {
	Vertices [][3]float64 `json:"vertices"`
	Faces    [][3]int     `json:"faces"`
}

// ClassifyRequest is the body of POST /api/classify. Shading devices pair
// with windows by index; both shading and context are optional.
type ClassifyRequest struct {
	Month    int           `json:"month"`
	CalcMode string        `json:"calc_mode,omitempty"`
	Windows  []MeshPayload `json:"windows"`
	Shading  []MeshPayload `json:"shading_objects,omitempty"`
	Context  []MeshPayload `json:"context,omitempty"`
	Notes    string        `json:"notes,omitempty"`
}

// ClassifyResponse carries the batch outcome, the stored run ID (empty
// when persistence is off) and the rendered text report.
type ClassifyResponse struct {
	RunID          string           `json:"run_id,omitempty"`
	Month          int              `json:"month"`
	CalcMode       string           `json:"calc_mode"`
	Results        []shading.Result `json:"results"`
	SkippedContext int              `json:"skipped_context"`
	DurationMS     float64          `json:"duration_ms"`
	Report         string           `json:"report"`
}

// toMesh converts one payload; a nil return means the entry carried no
// usable geometry.
func toMesh(p MeshPayload) *geom.Mesh {
	if len(p.Vertices) == 0 || len(p.Faces) == 0 {
		return nil
	}
	verts := make([]geom.Vec, len(p.Vertices))
	for i, v := range p.Vertices {
		verts[i] = geom.Vec{X: v[0], Y: v[1], Z: v[2]}
	}
	m, err := geom.NewMesh(verts, p.Faces)
	if err != nil {
		return nil
	}
	return m
}

func toMeshes(payloads []MeshPayload) []*geom.Mesh {
	meshes := make([]*geom.Mesh, len(payloads))
	for i, p := range payloads {
		meshes[i] = toMesh(p)
	}
	return meshes
}

func (s *Server) classifyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	var req ClassifyRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	if req.Month == 0 {
		req.Month = s.cfg.GetDefaultMonth()
	}
	if !units.ValidMonth(req.Month) {
		httputil.BadRequest(w, fmt.Sprintf("month %d out of range 1-12", req.Month))
		return
	}
	if len(req.Windows) == 0 {
		httputil.BadRequest(w, "no windows in request")
		return
	}

	mode := s.cfg.GetCalcMode()
	if req.CalcMode != "" {
		mode = shading.ParseCalcMode(req.CalcMode)
	}

	windows := toMeshes(req.Windows)
	shadings := toMeshes(req.Shading)
	ctx := shading.BuildContext(toMeshes(req.Context))

	start := time.Now()
	batch, err := s.classifier.ClassifyBatch(windows, shadings, ctx, req.Month, mode)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	durationMS := float64(time.Since(start).Nanoseconds()) / 1e6

	resp := ClassifyResponse{
		Month:          req.Month,
		CalcMode:       string(mode),
		Results:        batch.Results,
		SkippedContext: batch.SkippedContext,
		DurationMS:     durationMS,
	}
	resp.Report = report.Render(report.Input{
		Windows:   len(req.Windows),
		Shading:   len(req.Shading),
		Context:   len(req.Context),
		Month:     req.Month,
		Mode:      mode,
		Threshold: s.cfg.GetSignificanceDeg(),
	}, batch.Results)

	if s.store != nil && s.cfg.GetPersistRuns() {
		runID, err := s.store.SaveRun(req.Month, mode, batch, durationMS, req.Notes)
		if err != nil {
			// Persistence failure degrades to an unsaved response.
			monitoring.Logf("[API] failed to save run: %v", err)
		} else {
			resp.RunID = runID
		}
	}

	httputil.WriteJSONOK(w, resp)
}
