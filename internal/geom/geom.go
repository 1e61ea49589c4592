// Package geom provides the triangulated-mesh primitives used by the
// shading engine: meshes, bounding boxes, and ray intersection.
//
// Positions and directions are gonum r3 vectors. All meshes are treated as
// immutable once constructed; nothing in this package mutates a Mesh after
// NewMesh returns.
package geom

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec is the 3-component double-precision vector used throughout the engine.
type Vec = r3.Vec

// Unit returns the unit-length version of v, or the zero vector when v has
// no resolvable direction.
func Unit(v Vec) Vec {
	n := r3.Norm(v)
	if n == 0 {
		return Vec{}
	}
	return v.Scale(1 / n)
}
