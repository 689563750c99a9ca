// Package region derives closed polygonal regions from vector layers and
// validates them for extrusion. A Region is an outer boundary ring plus
// zero or more hole rings; it is the only geometry type the extruder
// accepts, and it must be topologically valid before it gets there.
package region

import (
	"math"

	"github.com/ctessum/geom"
)

// minRingArea is the absolute area below which a ring is considered
// degenerate and dropped.
const minRingArea = 1e-9

// Region is a closed polygon, possibly with holes. Rings are stored
// without a duplicated closing vertex.
type Region struct {
	Outer []geom.Point
	Holes [][]geom.Point
}

// Area returns the enclosed area: the outer ring's area minus the holes.
func (r *Region) Area() float64 {
	a := math.Abs(signedArea(r.Outer))
	for _, h := range r.Holes {
		a -= math.Abs(signedArea(h))
	}
	return a
}

// Valid reports whether every ring of the region is usable for extrusion:
// at least three vertices, non-degenerate area, and no self-intersection.
func (r *Region) Valid() bool {
	if !ringValid(r.Outer) {
		return false
	}
	for _, h := range r.Holes {
		if !ringValid(h) {
			return false
		}
	}
	return true
}

// Normalize orients the outer ring counter-clockwise and hole rings
// clockwise, the winding convention the extruder relies on for outward
// wall normals.
func (r *Region) Normalize() {
	if signedArea(r.Outer) < 0 {
		reverseRing(r.Outer)
	}
	for _, h := range r.Holes {
		if signedArea(h) > 0 {
			reverseRing(h)
		}
	}
}

// Polygon converts the region to a geom.Polygon with the normalized
// winding convention.
func (r *Region) Polygon() geom.Polygon {
	r.Normalize()
	p := make(geom.Polygon, 0, 1+len(r.Holes))
	p = append(p, append([]geom.Point(nil), r.Outer...))
	for _, h := range r.Holes {
		p = append(p, append([]geom.Point(nil), h...))
	}
	return p
}

func ringValid(ring []geom.Point) bool {
	if len(ring) < 3 {
		return false
	}
	if math.Abs(signedArea(ring)) < minRingArea {
		return false
	}
	return !ringSelfIntersects(ring)
}

// signedArea computes the shoelace area of a ring. Positive means
// counter-clockwise.
func signedArea(ring []geom.Point) float64 {
	a := 0.0
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return a / 2
}

func reverseRing(ring []geom.Point) {
	for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
		ring[i], ring[j] = ring[j], ring[i]
	}
}

// pointInRing reports whether pt lies strictly inside ring (ray casting,
// crossing number). Points on the boundary are not inside.
func pointInRing(pt geom.Point, ring []geom.Point) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := ring[i], ring[j]
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) {
			x := pj.X + (pt.Y-pj.Y)/(pi.Y-pj.Y)*(pi.X-pj.X)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// ringSelfIntersects reports whether any two non-adjacent edges of the
// ring intersect or touch. Quadratic in the number of edges, which is fine
// for the ring sizes extraction produces.
func ringSelfIntersects(ring []geom.Point) bool {
	n := len(ring)
	for i := 0; i < n; i++ {
		a1 := ring[i]
		a2 := ring[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// Skip edges adjacent to edge i (they share a vertex).
			if j == i || (j+1)%n == i || j == (i+1)%n {
				continue
			}
			b1 := ring[j]
			b2 := ring[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

// segmentsIntersect reports whether segments a1-a2 and b1-b2 share any
// point, including endpoint touches and collinear overlap.
func segmentsIntersect(a1, a2, b1, b2 geom.Point) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(b1, b2, a1) {
		return true
	}
	if d2 == 0 && onSegment(b1, b2, a2) {
		return true
	}
	if d3 == 0 && onSegment(a1, a2, b1) {
		return true
	}
	if d4 == 0 && onSegment(a1, a2, b2) {
		return true
	}
	return false
}

func cross(o, a, b geom.Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func onSegment(p, q, r geom.Point) bool {
	return math.Min(p.X, q.X) <= r.X && r.X <= math.Max(p.X, q.X) &&
		math.Min(p.Y, q.Y) <= r.Y && r.Y <= math.Max(p.Y, q.Y)
}

// AssembleRings groups raw rings into regions by containment: a ring
// enclosed by an odd number of other rings becomes a hole of its nearest
// enclosing ring, an evenly-nested ring starts a region of its own.
// Degenerate rings are dropped.
func AssembleRings(rings [][]geom.Point) []Region {
	var kept [][]geom.Point
	for _, ring := range rings {
		ring = dropClosingDup(ring)
		if len(ring) >= 3 && math.Abs(signedArea(ring)) >= minRingArea {
			kept = append(kept, ring)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	// Sort by descending area so parents precede children.
	for i := 1; i < len(kept); i++ {
		for j := i; j > 0 && math.Abs(signedArea(kept[j])) > math.Abs(signedArea(kept[j-1])); j-- {
			kept[j], kept[j-1] = kept[j-1], kept[j]
		}
	}

	parent := make([]int, len(kept))
	depth := make([]int, len(kept))
	for i := range kept {
		parent[i] = -1
		// The nearest enclosing ring is the smallest one that contains
		// this ring's first vertex; with the area ordering above that is
		// the last match.
		for j := 0; j < i; j++ {
			if pointInRing(kept[i][0], kept[j]) {
				parent[i] = j
			}
		}
		if parent[i] >= 0 {
			depth[i] = depth[parent[i]] + 1
		}
	}

	regionOf := make(map[int]int)
	var out []Region
	for i, ring := range kept {
		if depth[i]%2 == 0 {
			regionOf[i] = len(out)
			out = append(out, Region{Outer: ring})
			continue
		}
		ri := regionOf[parent[i]]
		out[ri].Holes = append(out[ri].Holes, ring)
	}
	for i := range out {
		out[i].Normalize()
	}
	return out
}

// dropClosingDup removes a duplicated closing vertex if present.
func dropClosingDup(ring []geom.Point) []geom.Point {
	n := len(ring)
	if n >= 2 && ring[0] == ring[n-1] {
		return ring[:n-1]
	}
	return ring
}
