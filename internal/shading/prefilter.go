package shading

import (
	"math"

	"github.com/zonwering-data/fshade.report/internal/geom"
)

// ContextItem is one piece of surrounding geometry: a triangulated mesh,
// its bounding box, and the index it arrived at in the input list.
type ContextItem struct {
	Mesh        *geom.Mesh
	Bounds      geom.BoundingBox
	SourceIndex int
}

// ContextSet is the read-only context shared by all windows in a batch.
// Built once up front; per-window processing only reads it.
type ContextSet struct {
	Items   []ContextItem
	Skipped int // input entries that were nil or had no geometry
}

// BuildContext wraps context meshes with their bounding boxes. Nil or empty
// entries are skipped and counted, never fatal: the batch continues with a
// reduced context set.
func BuildContext(meshes []*geom.Mesh) *ContextSet {
	set := &ContextSet{}
	for i, m := range meshes {
		if m == nil || len(m.Faces) == 0 {
			set.Skipped++
			continue
		}
		set.Items = append(set.Items, ContextItem{Mesh: m, Bounds: m.Bounds(), SourceIndex: i})
	}
	return set
}

// filterContext discards context items that cannot shade the window: items
// entirely behind it (with half-diagonal tolerance for straddlers), items
// beyond the maximum context distance, and items whose top sits below the
// window bottom. Coarse visibility only; exact occlusion is left to the
// ray caster.
func filterContext(set *ContextSet, windowCentre, normal geom.Vec, windowBounds geom.BoundingBox, maxDistance float64) []ContextItem {
	if set == nil || len(set.Items) == 0 {
		return nil
	}

	windowBottomZ := windowBounds.Min.Z
	var relevant []ContextItem

	for _, item := range set.Items {
		toItem := item.Bounds.Center().Sub(windowCentre)

		// Horizontal-plane facing test only: tall buildings behind and
		// above the window still cannot shade it from the front.
		dot := toItem.X*normal.X + toItem.Y*normal.Y
		if dot < -item.Bounds.Diagonal()/2 {
			continue
		}

		if math.Hypot(toItem.X, toItem.Y) > maxDistance {
			continue
		}

		if item.Bounds.Max.Z < windowBottomZ {
			continue
		}

		relevant = append(relevant, item)
	}
	return relevant
}
