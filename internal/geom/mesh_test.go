package geom

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// quad builds a two-triangle rectangle from four corners in CCW order.
func quad(a, b, c, d Vec) *Mesh {
	m, err := NewMesh([]Vec{a, b, c, d}, [][3]int{{0, 1, 2}, {0, 2, 3}})
	if err != nil {
		panic(err)
	}
	return m
}

func TestNewMesh_Empty(t *testing.T) {
	if _, err := NewMesh(nil, nil); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("NewMesh(nil, nil) err = %v, want ErrEmptyMesh", err)
	}
	if _, err := NewMesh([]Vec{{X: 1}}, nil); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("NewMesh with no faces err = %v, want ErrEmptyMesh", err)
	}
}

func TestNewMesh_FaceOutOfBounds(t *testing.T) {
	_, err := NewMesh([]Vec{{}, {X: 1}, {Y: 1}}, [][3]int{{0, 1, 3}})
	if !errors.Is(err, ErrFaceOutOfBounds) {
		t.Errorf("err = %v, want ErrFaceOutOfBounds", err)
	}
}

func TestProperties_VerticalQuad(t *testing.T) {
	// 1.5 x 2.0 window in the XZ plane facing -Y (south when +Y is north).
	m := quad(
		Vec{X: -0.75, Y: 0, Z: 0},
		Vec{X: 0.75, Y: 0, Z: 0},
		Vec{X: 0.75, Y: 0, Z: 2},
		Vec{X: -0.75, Y: 0, Z: 2},
	)

	props, err := m.Properties()
	if err != nil {
		t.Fatalf("Properties: %v", err)
	}

	if math.Abs(props.Center.X) > 1e-9 || math.Abs(props.Center.Z-1.0) > 1e-9 {
		t.Errorf("center = %+v, want (0, 0, 1)", props.Center)
	}
	if math.Abs(math.Abs(props.Normal.Y)-1.0) > 1e-9 {
		t.Errorf("normal = %+v, want +/-Y axis", props.Normal)
	}
	if got := r3.Norm(props.Normal); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("normal length = %v, want 1", got)
	}
	if h := props.Bounds.HeightZ(); math.Abs(h-2.0) > 1e-9 {
		t.Errorf("bbox height = %v, want 2", h)
	}
}

func TestProperties_AreaWeighting(t *testing.T) {
	// One large face on +Z and one tiny tilted face: the large face must
	// dominate the averaged normal.
	verts := []Vec{
		{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}, {X: 0, Y: 10, Z: 0}, // area 50, normal +Z
		{X: 0, Y: 0, Z: 0}, {X: 0.1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0.1}, // tiny, normal -Y
	}
	m, err := NewMesh(verts, [][3]int{{0, 1, 2}, {3, 4, 5}})
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}
	props, err := m.Properties()
	if err != nil {
		t.Fatalf("Properties: %v", err)
	}
	if props.Normal.Z < 0.99 {
		t.Errorf("normal = %+v, want dominated by +Z", props.Normal)
	}
}

func TestProperties_DegenerateTriangles(t *testing.T) {
	// All three corners collinear: zero area everywhere.
	verts := []Vec{{}, {X: 1}, {X: 2}}
	m, err := NewMesh(verts, [][3]int{{0, 1, 2}})
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}
	if _, err := m.Properties(); !errors.Is(err, ErrDegenerateMesh) {
		t.Errorf("err = %v, want ErrDegenerateMesh", err)
	}
}

func TestMerge(t *testing.T) {
	a := quad(Vec{}, Vec{X: 1}, Vec{X: 1, Z: 1}, Vec{Z: 1})
	b := quad(Vec{X: 5}, Vec{X: 6}, Vec{X: 6, Z: 1}, Vec{X: 5, Z: 1})

	m := Merge([]*Mesh{a, b})
	if len(m.Vertices) != 8 || len(m.Faces) != 4 {
		t.Fatalf("merged mesh has %d verts / %d faces, want 8 / 4", len(m.Vertices), len(m.Faces))
	}
	// Indices of the second mesh must be offset past the first mesh's verts.
	if m.Faces[2][0] != 4 {
		t.Errorf("face 2 first index = %d, want 4", m.Faces[2][0])
	}
	if m.Bounds().Max.X != 6 {
		t.Errorf("merged bbox max X = %v, want 6", m.Bounds().Max.X)
	}
	if Merge(nil) != nil {
		t.Error("Merge(nil) should return nil")
	}
}
