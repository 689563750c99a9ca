package solid_test

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/solidconv/pkg/solid"
)

const eps = 1e-6

func TestPlateDimensionsAndVolume(t *testing.T) {
	s := solid.Plate(20, 10, 2)
	if s.TriangleCount() != 12 {
		t.Fatalf("TriangleCount() = %d, want 12", s.TriangleCount())
	}
	min, max := s.BoundingBox()
	assertVec(t, "min", min, v3.Vec{})
	assertVec(t, "max", max, v3.Vec{X: 20, Y: 10, Z: 2})
	if v := s.SignedVolume(); math.Abs(v-400) > eps {
		t.Fatalf("SignedVolume() = %v, want 400", v)
	}
}

func TestReconcileNormalsFlipsInvertedMesh(t *testing.T) {
	s := solid.Plate(10, 10, 10)
	// Invert every triangle, then reconcile.
	for _, tri := range s.Triangles {
		tri[1], tri[2] = tri[2], tri[1]
	}
	if v := s.SignedVolume(); v >= 0 {
		t.Fatalf("inverted mesh has signed volume %v, expected negative", v)
	}
	s.ReconcileNormals()
	if v := s.SignedVolume(); math.Abs(v-1000) > eps {
		t.Fatalf("SignedVolume() after reconcile = %v, want 1000", v)
	}
}

func TestCentroidOfSymmetricBox(t *testing.T) {
	s := solid.Plate(10, 6, 4)
	assertVec(t, "centroid", s.Centroid(), v3.Vec{X: 5, Y: 3, Z: 2})
}

func TestTranslateAndScale(t *testing.T) {
	s := solid.Plate(10, 10, 2)
	s.Translate(v3.Vec{X: -5, Y: -5, Z: 1})
	min, max := s.BoundingBox()
	assertVec(t, "min", min, v3.Vec{X: -5, Y: -5, Z: 1})
	assertVec(t, "max", max, v3.Vec{X: 5, Y: 5, Z: 3})

	s = solid.Plate(10, 10, 2)
	s.Scale(2.5)
	_, max = s.BoundingBox()
	assertVec(t, "scaled max", max, v3.Vec{X: 25, Y: 25, Z: 5})
	if v := s.SignedVolume(); math.Abs(v-200*2.5*2.5*2.5) > eps {
		t.Fatalf("scaled volume = %v, want %v", v, 200*2.5*2.5*2.5)
	}
}

func TestMergeConcatenates(t *testing.T) {
	a := solid.Plate(10, 10, 2)
	b := solid.Plate(5, 5, 5)
	b.Translate(v3.Vec{X: 20})

	m := solid.Merge([]*solid.Solid{a, b})
	if m.TriangleCount() != a.TriangleCount()+b.TriangleCount() {
		t.Fatalf("merged TriangleCount() = %d, want %d", m.TriangleCount(), a.TriangleCount()+b.TriangleCount())
	}
	// Concatenation, not geometric union: volumes add for disjoint parts.
	if v := m.SignedVolume(); math.Abs(v-(200+125)) > eps {
		t.Fatalf("merged volume = %v, want 325", v)
	}
}

func TestEmptySolid(t *testing.T) {
	s := &solid.Solid{}
	if !s.IsEmpty() {
		t.Fatal("empty solid reported non-empty")
	}
	min, max := s.BoundingBox()
	assertVec(t, "min", min, v3.Vec{})
	assertVec(t, "max", max, v3.Vec{})
	if v := s.SignedVolume(); v != 0 {
		t.Fatalf("empty solid volume = %v, want 0", v)
	}
}

func TestFallbackPlate(t *testing.T) {
	s := solid.FallbackPlate()
	ext := s.Extents()
	assertVec(t, "extents", ext, v3.Vec{X: 20, Y: 20, Z: 2})
}

func assertVec(t *testing.T, name string, got, want v3.Vec) {
	t.Helper()
	if math.Abs(got.X-want.X) > eps || math.Abs(got.Y-want.Y) > eps || math.Abs(got.Z-want.Z) > eps {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}
