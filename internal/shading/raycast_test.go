package shading

import (
	"math"
	"testing"

	"github.com/zonwering-data/fshade.report/internal/geom"
)

func southWindowBounds() geom.BoundingBox {
	return geom.BoxFromPoints([]geom.Vec{
		{X: -0.75, Y: 0, Z: 0},
		{X: 0.75, Y: 0, Z: 2},
	})
}

func TestCastContextRays_NoContext(t *testing.T) {
	bounds := southWindowBounds()
	normal := geom.Vec{Y: -1}
	samples := samplePoints(bounds, normal)
	fan := rayDirections(normal)

	if got := castContextRays(samples, fan, nil, 0.05, 500); got != 0 {
		t.Errorf("nil context: got %v, want 0", got)
	}
	if got := castContextRays(nil, fan, blockAt(t, -1, 1, -5, 0, 10), 0.05, 500); got != 0 {
		t.Errorf("no samples: got %v, want 0", got)
	}
}

func TestCastContextRays_FullyBlocked(t *testing.T) {
	bounds := southWindowBounds()
	normal := geom.Vec{Y: -1}
	samples := samplePoints(bounds, normal)
	fan := rayDirections(normal)

	// Huge wall 5 m in front catches every fan ray from every sample point,
	// so each per-sample maximum is the top ring and so is the blend.
	wall := blockAt(t, -50, 50, -5, 0, 100)

	got := castContextRays(samples, fan, wall, 0.05, 500)
	if math.Abs(got-elevationMax) > 1e-9 {
		t.Errorf("fully blocked: got %v, want %v", got, elevationMax)
	}
}

func TestCastContextRays_WeightedBlend(t *testing.T) {
	bounds := southWindowBounds()
	normal := geom.Vec{Y: -1}
	samples := samplePoints(bounds, normal)
	fan := rayDirections(normal)

	// A 5.5 m wall 5 m out. The straight-ahead ray governs each sample's
	// maximum (off-axis rays climb faster), so a sample at height z is
	// blocked up to the last ring with z + 5*tan(elev) <= 5.5: the three
	// bottom samples reach 45 deg, the mid sample 40, the top sample 35.
	wall := blockAt(t, -50, 50, -5, 0, 5.5)

	want := averageShare*((45*(1.5+2.0+1.5)+40*1.0+35*0.5)/6.5) + maximumShare*45
	got := castContextRays(samples, fan, wall, 0.05, 500)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("blend: got %v, want %v", got, want)
	}
}

func TestCastContextRays_DistanceWindow(t *testing.T) {
	bounds := southWindowBounds()
	normal := geom.Vec{Y: -1}
	samples := samplePoints(bounds, normal)
	fan := rayDirections(normal)
	wall := blockAt(t, -50, 50, -5, 0, 100)

	// Same wall, but a max distance short of it: nothing registers.
	if got := castContextRays(samples, fan, wall, 0.05, 3); got != 0 {
		t.Errorf("wall beyond max distance: got %v, want 0", got)
	}
}

func TestCastShadingRays_NoShading(t *testing.T) {
	elev, ho := castShadingRays(southWindowBounds(), geom.Vec{Y: -1}, nil, 0.05, 50)
	if elev != openSkyElev || ho != 0 {
		t.Errorf("got (%v, %v), want (%v, 0)", elev, ho, openSkyElev)
	}
}

func TestCastShadingRays_Overhang(t *testing.T) {
	bounds := southWindowBounds()
	normal := geom.Vec{Y: -1}

	// Horizontal overhang at the window top, reaching 1 m out.
	overhang, err := geom.NewMesh([]geom.Vec{
		{X: -1, Y: 0, Z: 2},
		{X: 1, Y: 0, Z: 2},
		{X: 1, Y: -1, Z: 2},
		{X: -1, Y: -1, Z: 2},
	}, [][3]int{{0, 1, 2}, {0, 2, 3}})
	if err != nil {
		t.Fatalf("overhang mesh: %v", err)
	}

	elev, ho := castShadingRays(bounds, normal, overhang, 0.05, 50)

	// From the reference point at z=0.1 the scan ray reaches the overhang
	// plane at y = -1.9/tan(elev); that lands within the 1 m reach from
	// 65 deg upward, so 65 is the lowest blocked ring.
	if elev != 65 {
		t.Fatalf("elevation = %v, want 65", elev)
	}
	wantHo := (1.9 / math.Tan(65*math.Pi/180)) / 2
	if math.Abs(ho-wantHo) > 1e-9 {
		t.Errorf("ho = %v, want %v", ho, wantHo)
	}
}

func TestCastShadingRays_LowestElevationWins(t *testing.T) {
	bounds := southWindowBounds()
	normal := geom.Vec{Y: -1}

	// A wall panel straight ahead of the reference point blocks the lowest
	// rings; its elevation is reported, not a higher ring's.
	panel := blockAt(t, -3, 3, -4, 0, 1)

	elev, ho := castShadingRays(bounds, normal, panel, 0.05, 50)
	if elev != 5 {
		t.Fatalf("elevation = %v, want 5", elev)
	}
	if ho <= 0 {
		t.Errorf("ho = %v, want > 0", ho)
	}
}

func TestCastShadingRays_FlatWindowNoHeight(t *testing.T) {
	flat := geom.BoxFromPoints([]geom.Vec{
		{X: -0.75, Y: 0, Z: 1},
		{X: 0.75, Y: 0, Z: 1},
	})
	panel := blockAt(t, -3, 3, -4, 0, 10)

	elev, ho := castShadingRays(flat, geom.Vec{Y: -1}, panel, 0.05, 50)
	if elev != 5 {
		t.Fatalf("elevation = %v, want 5", elev)
	}
	if ho != 0 {
		t.Errorf("ho for zero-height window = %v, want 0", ho)
	}
}
