package geom

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh errors surfaced by NewMesh and Properties. Callers map these to
// per-window error results rather than aborting a batch.
var (
	ErrEmptyMesh       = errors.New("mesh has no vertices or no triangles")
	ErrDegenerateMesh  = errors.New("mesh has no resolvable face normal")
	ErrFaceOutOfBounds = errors.New("triangle index out of vertex range")
)

// Mesh is an immutable indexed triangle mesh. The engine only ever reads
// it; construction validates the index buffer once so intersection code can
// skip bounds checks.
type Mesh struct {
	Vertices []Vec
	Faces    [][3]int

	bbox BoundingBox
}

// NewMesh validates vertices and triangle indices and precomputes the
// bounding box. Quads must be split upstream; this package only consumes
// triangles.
func NewMesh(vertices []Vec, faces [][3]int) (*Mesh, error) {
	if len(vertices) == 0 || len(faces) == 0 {
		return nil, ErrEmptyMesh
	}
	for i, f := range faces {
		for _, vi := range f {
			if vi < 0 || vi >= len(vertices) {
				return nil, fmt.Errorf("face %d: %w", i, ErrFaceOutOfBounds)
			}
		}
	}
	return &Mesh{
		Vertices: vertices,
		Faces:    faces,
		bbox:     BoxFromPoints(vertices),
	}, nil
}

// Bounds returns the precomputed bounding box.
func (m *Mesh) Bounds() BoundingBox { return m.bbox }

// Properties holds the derived per-mesh quantities the engine works from.
type Properties struct {
	Center Vec // mesh centroid (area-weighted over triangles)
	Normal Vec // area-weighted average face normal, unit length
	Bounds BoundingBox
}

// Properties derives the centroid, area-weighted unit normal, and bounding
// box. Triangles contribute to the normal in proportion to their area, so
// irregular triangulations of the same surface agree on the outward
// direction. Returns ErrDegenerateMesh when the triangles enclose no area.
func (m *Mesh) Properties() (Properties, error) {
	var accNormal, accCentroid Vec
	totalArea := 0.0

	for _, f := range m.Faces {
		a := m.Vertices[f[0]]
		b := m.Vertices[f[1]]
		c := m.Vertices[f[2]]

		// Cross product of two edges: direction is the face normal,
		// magnitude is twice the triangle area.
		n := b.Sub(a).Cross(c.Sub(a))
		area := 0.5 * r3.Norm(n)
		if area == 0 {
			continue
		}

		accNormal = accNormal.Add(Unit(n).Scale(area))
		centroid := a.Add(b).Add(c).Scale(1.0 / 3.0)
		accCentroid = accCentroid.Add(centroid.Scale(area))
		totalArea += area
	}

	if totalArea == 0 {
		return Properties{}, ErrDegenerateMesh
	}

	normal := Unit(accNormal)
	if r3.Norm(normal) == 0 {
		// Opposing faces cancelled out exactly.
		return Properties{}, ErrDegenerateMesh
	}

	return Properties{
		Center: accCentroid.Scale(1 / totalArea),
		Normal: normal,
		Bounds: m.bbox,
	}, nil
}

// Merge concatenates meshes into one. Used to collapse the surviving
// context set into a single intersection target per window.
func Merge(meshes []*Mesh) *Mesh {
	if len(meshes) == 0 {
		return nil
	}
	var vertices []Vec
	var faces [][3]int
	bbox := emptyBox()
	for _, m := range meshes {
		offset := len(vertices)
		vertices = append(vertices, m.Vertices...)
		for _, f := range m.Faces {
			faces = append(faces, [3]int{f[0] + offset, f[1] + offset, f[2] + offset})
		}
		bbox = bbox.Union(m.bbox)
	}
	return &Mesh{Vertices: vertices, Faces: faces, bbox: bbox}
}
