package solid

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	libtess2 "github.com/hajimehoshi/go-libtess2"

	"github.com/chazu/solidconv/pkg/region"
)

// Extrude sweeps a valid region along +z to the given depth. The caps are
// triangulated with an even-odd tessellation so hole rings punch through,
// and the wall quads follow the region's normalized winding (outer rings
// counter-clockwise, holes clockwise), which makes every wall face
// outward. The resulting solid has its normals reconciled.
//
// A degenerate region can legitimately produce an empty solid; the caller
// decides whether that is fatal.
func Extrude(r region.Region, depth float64) (*Solid, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("extrude: depth must be positive, got %g", depth)
	}
	r.Normalize()

	rings := make([][]geom.Point, 0, 1+len(r.Holes))
	rings = append(rings, r.Outer)
	rings = append(rings, r.Holes...)

	s := &Solid{}
	if err := appendCaps(s, rings, depth); err != nil {
		return nil, err
	}
	appendWalls(s, rings, depth)
	s.ReconcileNormals()
	return s, nil
}

// appendCaps tessellates the region interior once and emits it twice: at
// z=depth facing up and at z=0 facing down.
func appendCaps(s *Solid, rings [][]geom.Point, depth float64) error {
	contours := make([]libtess2.Contour, 0, len(rings))
	for _, ring := range rings {
		c := make(libtess2.Contour, 0, len(ring))
		for _, pt := range ring {
			c = append(c, libtess2.Vertex{X: float32(pt.X), Y: float32(pt.Y)})
		}
		contours = append(contours, c)
	}

	elements, verts, err := libtess2.Tesselate(contours, libtess2.WindingRuleOdd)
	if err != nil {
		return fmt.Errorf("extrude: cap tessellation: %w", err)
	}

	at := func(i int, z float64) v3.Vec {
		return v3.Vec{X: float64(verts[i].X), Y: float64(verts[i].Y), Z: z}
	}
	for i := 0; i+2 < len(elements); i += 3 {
		a, b, c := elements[i], elements[i+1], elements[i+2]
		// Top cap keeps the tessellation winding, bottom cap reverses it.
		s.Triangles = append(s.Triangles,
			&sdf.Triangle3{at(a, depth), at(b, depth), at(c, depth)},
			&sdf.Triangle3{at(a, 0), at(c, 0), at(b, 0)},
		)
	}
	return nil
}

// appendWalls emits two triangles per ring edge. With outer rings
// counter-clockwise and hole rings clockwise, the quad orientation used
// here puts the wall normals on the outside of the solid for both.
func appendWalls(s *Solid, rings [][]geom.Point, depth float64) {
	for _, ring := range rings {
		n := len(ring)
		for i := 0; i < n; i++ {
			p := ring[i]
			q := ring[(i+1)%n]
			b0 := v3.Vec{X: p.X, Y: p.Y, Z: 0}
			b1 := v3.Vec{X: q.X, Y: q.Y, Z: 0}
			t0 := v3.Vec{X: p.X, Y: p.Y, Z: depth}
			t1 := v3.Vec{X: q.X, Y: q.Y, Z: depth}
			s.Triangles = append(s.Triangles,
				&sdf.Triangle3{b0, b1, t1},
				&sdf.Triangle3{b0, t1, t0},
			)
		}
	}
}
