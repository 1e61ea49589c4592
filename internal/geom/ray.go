package geom

// Ray is an origin plus a unit direction.
type Ray struct {
	Origin Vec
	Dir    Vec
}

// intersectTriangle runs Moller-Trumbore against one triangle and returns
// the ray parameter t, or false when the ray misses or runs parallel to
// the triangle plane. Backfaces count as hits: an obstruction blocks sky
// regardless of its winding.
func intersectTriangle(r Ray, a, b, c Vec) (float64, bool) {
	const eps = 1e-9

	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if det > -eps && det < eps {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) * inv
	if t < eps {
		return 0, false
	}
	return t, true
}

// IntersectRay returns the nearest hit distance with t in [minDist, maxDist),
// or false when no triangle is hit in that window. The mesh bounding box is
// tested first so rays that miss the whole mesh skip the triangle loop.
func (m *Mesh) IntersectRay(r Ray, minDist, maxDist float64) (float64, bool) {
	if m == nil || len(m.Faces) == 0 {
		return 0, false
	}
	if !m.bbox.IntersectsRay(r) {
		return 0, false
	}

	nearest := maxDist
	hit := false
	for _, f := range m.Faces {
		t, ok := intersectTriangle(r, m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]])
		if !ok || t < minDist || t >= nearest {
			continue
		}
		nearest = t
		hit = true
	}
	if !hit {
		return 0, false
	}
	return nearest, true
}

// HitsRay reports whether any triangle is hit with t in [minDist, maxDist).
// Cheaper than IntersectRay when the distance is not needed: it stops at
// the first qualifying hit.
func (m *Mesh) HitsRay(r Ray, minDist, maxDist float64) bool {
	if m == nil || len(m.Faces) == 0 {
		return false
	}
	if !m.bbox.IntersectsRay(r) {
		return false
	}
	for _, f := range m.Faces {
		t, ok := intersectTriangle(r, m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]])
		if ok && t >= minDist && t < maxDist {
			return true
		}
	}
	return false
}
