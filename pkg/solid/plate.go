package solid

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// plateFaces indexes the 12 triangles of a rectangular box over its 8
// corner vertices, wound so the normals face outward.
var plateFaces = [12][3]int{
	{0, 3, 1}, {1, 3, 2}, // bottom
	{0, 4, 7}, {0, 7, 3}, // x=0 side
	{4, 5, 6}, {4, 6, 7}, // top
	{5, 1, 2}, {5, 2, 6}, // x=w side
	{2, 3, 6}, {3, 7, 6}, // y=h side
	{0, 1, 5}, {0, 5, 4}, // y=0 side
}

// Plate builds a w x h x d rectangular solid with its minimum corner at
// the origin.
func Plate(w, h, d float64) *Solid {
	corners := [8]v3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: w, Y: 0, Z: 0}, {X: w, Y: h, Z: 0}, {X: 0, Y: h, Z: 0},
		{X: 0, Y: 0, Z: d}, {X: w, Y: 0, Z: d}, {X: w, Y: h, Z: d}, {X: 0, Y: h, Z: d},
	}
	s := &Solid{}
	for _, f := range plateFaces {
		s.Triangles = append(s.Triangles, &sdf.Triangle3{corners[f[0]], corners[f[1]], corners[f[2]]})
	}
	s.ReconcileNormals()
	return s
}

// FallbackPlate is the fixed placeholder solid written when a run fails
// under the emit-fallback policy: a small flat box a downstream consumer
// can always find at the output path.
func FallbackPlate() *Solid {
	return Plate(20, 20, 2)
}
