package shading

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/zonwering-data/fshade.report/internal/geom"
	"github.com/zonwering-data/fshade.report/internal/monitoring"
)

// Params are the tunable engine limits. Zero values are replaced by the
// defaults below, so Params{} behaves like DefaultParams().
type Params struct {
	// SignificanceDeg is the sky-blockage angle above which an obstruction
	// counts as significant.
	SignificanceDeg float64
	// MaxContextDistance bounds both the prefilter radius and valid
	// context hit distances.
	MaxContextDistance float64
	// MaxShadingDistance bounds valid shading-device hit distances;
	// devices sit close to the window, distant hits are likely errors.
	MaxShadingDistance float64
	// MinRayDistance rejects self-intersection near-misses.
	MinRayDistance float64
	// Workers caps batch parallelism; 0 means runtime.NumCPU().
	Workers int
}

// DefaultParams returns the NEN 5060 defaults.
func DefaultParams() Params {
	return Params{
		SignificanceDeg:    significanceThresholdDeg,
		MaxContextDistance: 500.0,
		MaxShadingDistance: 50.0,
		MinRayDistance:     0.05,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.SignificanceDeg <= 0 {
		p.SignificanceDeg = d.SignificanceDeg
	}
	if p.MaxContextDistance <= 0 {
		p.MaxContextDistance = d.MaxContextDistance
	}
	if p.MaxShadingDistance <= 0 {
		p.MaxShadingDistance = d.MaxShadingDistance
	}
	if p.MinRayDistance <= 0 {
		p.MinRayDistance = d.MinRayDistance
	}
	return p
}

// Result is one window's classification outcome. Every requested window
// yields exactly one Result, including failures.
type Result struct {
	WindowIndex    int            `json:"window_index"`
	Classification Classification `json:"classification"`
	Fsh            float64        `json:"fsh_factor"`
	Orientation    Orientation    `json:"orientation"`
	HoRatio        float64        `json:"ho_ratio"`
	ContextAngle   float64        `json:"context_angle"`
	ShadingAngle   float64        `json:"shading_angle"`
	ContextBlocked float64        `json:"context_blocked"`
	ShadingBlocked float64        `json:"shading_blocked"`
	Dominant       DominantFactor `json:"dominant_factor"`
	Debug          string         `json:"debug_info,omitempty"`
}

// BatchResult carries the per-window results in input order plus the count
// of context items that could not be used.
type BatchResult struct {
	Results        []Result `json:"results"`
	SkippedContext int      `json:"skipped_context"`
}

// Classifier runs window classifications. Safe for concurrent use: the
// only mutable state is the ray-direction cache, which synchronises
// internally.
type Classifier struct {
	params Params
	dirs   *directionCache
}

// NewClassifier builds a classifier with the given params (zero fields
// default).
func NewClassifier(params Params) *Classifier {
	return &Classifier{
		params: params.withDefaults(),
		dirs:   newDirectionCache(),
	}
}

// errorResult builds the well-formed record returned for windows that
// cannot be analysed: Error class, unshaded factor, open sky.
func errorResult(index int, reason string) Result {
	return Result{
		WindowIndex:    index,
		Classification: ClassError,
		Fsh:            defaultFsh,
		Orientation:    OrientationUnknown,
		ShadingAngle:   openSkyElev,
		Dominant:       DominantError,
		Debug:          "ERROR: " + reason,
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

// ClassifyWindow classifies a single window. Geometry problems yield an
// Error result; only an out-of-range month is a structural failure.
func (c *Classifier) ClassifyWindow(window *geom.Mesh, shadingMesh *geom.Mesh, ctx *ContextSet, month int, mode CalcMode) (Result, error) {
	if month < 1 || month > 12 {
		return Result{}, fmt.Errorf("month %d out of range 1-12", month)
	}
	return c.classifyWindow(window, shadingMesh, ctx, month, mode, 0), nil
}

// classifyWindow is the per-window pipeline. A recover guard converts any
// numeric/intersection panic into an Error result so one bad window never
// takes down a batch.
func (c *Classifier) classifyWindow(window *geom.Mesh, shadingMesh *geom.Mesh, ctx *ContextSet, month int, mode CalcMode, index int) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			monitoring.Logf("[Classifier] window %d panicked: %v", index, r)
			res = errorResult(index, fmt.Sprintf("internal failure: %v", r))
		}
	}()

	if window == nil {
		return errorResult(index, "nil window mesh")
	}
	props, err := window.Properties()
	if err != nil {
		return errorResult(index, err.Error())
	}

	orientation := OrientationFromNormal(props.Normal)
	fan := c.dirs.get(props.Normal)
	samples := samplePoints(props.Bounds, props.Normal)

	relevant := filterContext(ctx, props.Center, props.Normal, props.Bounds, c.params.MaxContextDistance)
	var merged *geom.Mesh
	if len(relevant) > 0 {
		meshes := make([]*geom.Mesh, len(relevant))
		for i, item := range relevant {
			meshes[i] = item.Mesh
		}
		merged = geom.Merge(meshes)
	}

	contextElev := castContextRays(samples, fan, merged, c.params.MinRayDistance, c.params.MaxContextDistance)
	shadingElev, shadingHo := castShadingRays(props.Bounds, props.Normal, shadingMesh, c.params.MinRayDistance, c.params.MaxShadingDistance)

	hasShading := shadingMesh != nil && len(shadingMesh.Faces) > 0
	d := classify(contextElev, shadingElev, hasShading, shadingHo, c.params.SignificanceDeg)

	fsh := LookupFsh(mode, d.Class, orientation, month, d.HoRatio)

	res = Result{
		WindowIndex:    index,
		Classification: d.Class,
		Fsh:            round3(fsh),
		Orientation:    orientation,
		HoRatio:        round3(d.HoRatio),
		ContextAngle:   round1(contextElev),
		ShadingAngle:   round1(shadingElev),
		ContextBlocked: round1(contextElev),
		ShadingBlocked: round1(90 - shadingElev),
		Dominant:       d.Dominant,
	}
	res.Debug = fmt.Sprintf("W%d|%s|Ctx:%.0fdeg|Shd:%.0fdeg|%s|Fsh=%.2f",
		index, orientation, res.ContextBlocked, res.ShadingBlocked, d.Class, fsh)
	return res
}

// ClassifyBatch classifies windows in parallel. Shading devices pair with
// windows by index; missing entries mean no device. Results come back in
// input order; per-window failures are Error results and never abort the
// batch.
func (c *Classifier) ClassifyBatch(windows []*geom.Mesh, shadings []*geom.Mesh, ctx *ContextSet, month int, mode CalcMode) (*BatchResult, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month %d out of range 1-12", month)
	}
	if ctx == nil {
		ctx = &ContextSet{}
	}

	results := make([]Result, len(windows))

	workers := c.params.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(windows) {
		workers = len(windows)
	}
	if workers < 1 {
		workers = 1
	}

	// Pre-warm the direction fans for the distinct facings so workers
	// mostly read the cache instead of racing to populate it.
	for _, w := range windows {
		if w == nil {
			continue
		}
		if props, err := w.Properties(); err == nil {
			c.dirs.get(props.Normal)
		}
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				var shadingMesh *geom.Mesh
				if i < len(shadings) {
					shadingMesh = shadings[i]
				}
				results[i] = c.classifyWindow(windows[i], shadingMesh, ctx, month, mode, i)
			}
		}()
	}
	for i := range windows {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return &BatchResult{Results: results, SkippedContext: ctx.Skipped}, nil
}
