package shading

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/zonwering-data/fshade.report/internal/geom"
)

// SamplePoint is a weighted ray origin on the window face.
type SamplePoint struct {
	Position geom.Vec
	Weight   float64
}

// Sample point weights per NEN 5060 practice: the bottom-centre point is
// the regulatory reference point and dominates the weighted average.
const (
	weightBottomSide   = 1.5
	weightBottomCentre = 2.0
	weightMid          = 1.0
	weightTop          = 0.5

	// Offset of the bottom side points from centre, as a fraction of the
	// window width.
	sideOffsetFraction = 0.35

	// Sample points sit slightly inside the glass edge to avoid grazing
	// self-hits on frame geometry.
	edgeInsetZ = 0.1
)

// rightVector derives the in-plane horizontal axis as normal x up. Windows
// that face almost straight up or down have no usable horizontal component;
// those fall back to the world X axis.
func rightVector(normal geom.Vec, fallback geom.Vec) geom.Vec {
	right := normal.Cross(geom.Vec{Z: 1})
	if r3.Norm(right) < 1e-3 {
		return fallback
	}
	return geom.Unit(right)
}

// samplePoints places the five weighted sample points on the window face:
// three across the bottom, one mid-height, one near the top.
func samplePoints(bounds geom.BoundingBox, normal geom.Vec) []SamplePoint {
	centre := bounds.Center()
	right := rightVector(normal, geom.Vec{X: 1})

	width := bounds.Max.X - bounds.Min.X
	if dy := bounds.Max.Y - bounds.Min.Y; dy > width {
		width = dy
	}
	halfWidth := width * sideOffsetFraction

	zBottom := bounds.Min.Z + edgeInsetZ
	zMid := (bounds.Min.Z + bounds.Max.Z) / 2
	zTop := bounds.Max.Z - edgeInsetZ

	at := func(x, y, z float64) geom.Vec { return geom.Vec{X: x, Y: y, Z: z} }

	return []SamplePoint{
		{at(centre.X-right.X*halfWidth, centre.Y-right.Y*halfWidth, zBottom), weightBottomSide},
		{at(centre.X, centre.Y, zBottom), weightBottomCentre},
		{at(centre.X+right.X*halfWidth, centre.Y+right.Y*halfWidth, zBottom), weightBottomSide},
		{at(centre.X, centre.Y, zMid), weightMid},
		{at(centre.X, centre.Y, zTop), weightTop},
	}
}

// referencePoint is the bottom-centre regulatory reference point used as
// the shading ray origin.
func referencePoint(bounds geom.BoundingBox) geom.Vec {
	c := bounds.Center()
	return geom.Vec{X: c.X, Y: c.Y, Z: bounds.Min.Z + edgeInsetZ}
}
