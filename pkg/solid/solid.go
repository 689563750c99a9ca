// Package solid builds and manipulates triangulated 3D solids: extruding
// regions, merging per-region solids into one mesh, normalizing scale and
// position, and serializing to STL.
package solid

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Solid is a triangulated volume. Triangles follow the outward-normal
// winding convention (counter-clockwise seen from outside); use
// ReconcileNormals after assembling triangles by hand.
type Solid struct {
	Triangles []*sdf.Triangle3
}

// IsEmpty returns true if the solid has no triangles.
func (s *Solid) IsEmpty() bool {
	return len(s.Triangles) == 0
}

// TriangleCount returns the number of triangles.
func (s *Solid) TriangleCount() int {
	return len(s.Triangles)
}

// BoundingBox returns the axis-aligned bounding box.
func (s *Solid) BoundingBox() (min, max v3.Vec) {
	if s.IsEmpty() {
		return v3.Vec{}, v3.Vec{}
	}
	min = s.Triangles[0][0]
	max = min
	for _, t := range s.Triangles {
		for i := 0; i < 3; i++ {
			v := t[i]
			min = v3.Vec{X: fmin(min.X, v.X), Y: fmin(min.Y, v.Y), Z: fmin(min.Z, v.Z)}
			max = v3.Vec{X: fmax(max.X, v.X), Y: fmax(max.Y, v.Y), Z: fmax(max.Z, v.Z)}
		}
	}
	return min, max
}

// Extents returns the bounding box dimensions.
func (s *Solid) Extents() v3.Vec {
	min, max := s.BoundingBox()
	return max.Sub(min)
}

// Centroid returns the area-weighted average of triangle centroids. For a
// closed mesh this approximates the surface centroid, which is what the
// positioning stage centers on.
func (s *Solid) Centroid() v3.Vec {
	var sum v3.Vec
	total := 0.0
	for _, t := range s.Triangles {
		a := triangleArea(t)
		c := t[0].Add(t[1]).Add(t[2]).MulScalar(1.0 / 3.0)
		sum = sum.Add(c.MulScalar(a))
		total += a
	}
	if total == 0 {
		return v3.Vec{}
	}
	return sum.MulScalar(1.0 / total)
}

// SignedVolume computes the enclosed volume via the divergence theorem.
// Negative volume means the mesh winding faces inward.
func (s *Solid) SignedVolume() float64 {
	v := 0.0
	for _, t := range s.Triangles {
		v += t[0].Dot(t[1].Cross(t[2])) / 6.0
	}
	return v
}

// ReconcileNormals flips every triangle when the signed volume is
// negative, so that outward-facing normals truly face outward. Downstream
// slicers depend on correct winding.
func (s *Solid) ReconcileNormals() {
	if s.SignedVolume() >= 0 {
		return
	}
	for _, t := range s.Triangles {
		t[1], t[2] = t[2], t[1]
	}
}

// Translate moves the solid by v in place.
func (s *Solid) Translate(v v3.Vec) {
	for _, t := range s.Triangles {
		for i := 0; i < 3; i++ {
			t[i] = t[i].Add(v)
		}
	}
}

// Scale scales the solid uniformly about the origin in place.
func (s *Solid) Scale(k float64) {
	for _, t := range s.Triangles {
		for i := 0; i < 3; i++ {
			t[i] = t[i].MulScalar(k)
		}
	}
}

// Merge concatenates solids into one. Geometric union is not required;
// disjoint or touching solids are simply combined into a single mesh.
func Merge(solids []*Solid) *Solid {
	out := &Solid{}
	for _, s := range solids {
		out.Triangles = append(out.Triangles, s.Triangles...)
	}
	return out
}

func triangleArea(t *sdf.Triangle3) float64 {
	ab := t[1].Sub(t[0])
	ac := t[2].Sub(t[0])
	return ab.Cross(ac).Length() / 2
}

func fmin(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func fmax(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
