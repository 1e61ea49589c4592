package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// BoundingBox is an axis-aligned box. Derived once per mesh and immutable
// thereafter.
type BoundingBox struct {
	Min Vec
	Max Vec
}

// emptyBox returns a box that contains nothing; extending it with any point
// yields a box containing exactly that point.
func emptyBox() BoundingBox {
	inf := math.Inf(1)
	return BoundingBox{
		Min: Vec{X: inf, Y: inf, Z: inf},
		Max: Vec{X: -inf, Y: -inf, Z: -inf},
	}
}

// BoxFromPoints computes the bounding box of a point set.
func BoxFromPoints(pts []Vec) BoundingBox {
	b := emptyBox()
	for _, p := range pts {
		b = b.Extend(p)
	}
	return b
}

// Extend grows the box to include p.
func (b BoundingBox) Extend(p Vec) BoundingBox {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
	return b
}

// Union returns the smallest box containing both boxes.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return b.Extend(o.Min).Extend(o.Max)
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Vec {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Diagonal returns the length of the box diagonal.
func (b BoundingBox) Diagonal() float64 {
	return r3.Norm(b.Max.Sub(b.Min))
}

// HeightZ returns the vertical extent of the box.
func (b BoundingBox) HeightZ() float64 {
	return b.Max.Z - b.Min.Z
}

// IntersectsRay reports whether the ray passes through the box anywhere on
// [0, +inf). Slab method per axis; axes where the direction component is
// near zero degenerate to an interval containment check.
func (b BoundingBox) IntersectsRay(r Ray) bool {
	const parEps = 1e-12
	tmin, tmax := math.Inf(-1), math.Inf(1)

	slab := func(o, d, lo, hi float64) bool {
		if math.Abs(d) < parEps {
			return o >= lo && o <= hi
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		return true
	}

	if !slab(r.Origin.X, r.Dir.X, b.Min.X, b.Max.X) {
		return false
	}
	if !slab(r.Origin.Y, r.Dir.Y, b.Min.Y, b.Max.Y) {
		return false
	}
	if !slab(r.Origin.Z, r.Dir.Z, b.Min.Z, b.Max.Z) {
		return false
	}
	return tmax >= 0 && tmin <= tmax
}
