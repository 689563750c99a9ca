// Package geomops implements the region.Ops capability interface using
// the github.com/ctessum/geom polygon-clipping library.
package geomops

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"

	"github.com/chazu/solidconv/pkg/region"
)

// Compile-time interface check.
var _ region.Ops = (*Backend)(nil)

// Backend is the ctessum/geom-backed repair implementation.
type Backend struct {
	// Tol is the distance below which two vertices are considered
	// coincident when closing gaps and deduplicating.
	Tol float64
}

// New returns a Backend with the given vertex tolerance.
func New(tol float64) *Backend {
	return &Backend{Tol: tol}
}

// MakeValid cleans ring-level defects: it snaps near-coincident closing
// endpoints, removes consecutive duplicate vertices, drops rings that are
// degenerate after cleaning, and reassembles the survivors into regions
// by containment.
func (b *Backend) MakeValid(r region.Region) ([]region.Region, error) {
	rings := make([][]geom.Point, 0, 1+len(r.Holes))
	if ring := b.cleanRing(r.Outer); ring != nil {
		rings = append(rings, ring)
	}
	for _, h := range r.Holes {
		if ring := b.cleanRing(h); ring != nil {
			rings = append(rings, ring)
		}
	}
	return region.AssembleRings(rings), nil
}

// SelfUnion computes the union of the region with itself. The clipping
// pass subdivides the boundary at self-intersections and keeps only the
// outline of the covered area, which resolves bowties and overlaps.
func (b *Backend) SelfUnion(r region.Region) ([]region.Region, error) {
	p := r.Polygon()
	switch u := p.Union(p).(type) {
	case geom.Polygon:
		return regionsFromPolygon(u), nil
	case geom.MultiPolygon:
		var out []region.Region
		for _, part := range u.Polygons() {
			out = append(out, regionsFromPolygon(part)...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("geomops: union returned unsupported geometry %T", u)
	}
}

// cleanRing deduplicates and closes one ring, returning nil if the ring
// is degenerate.
func (b *Backend) cleanRing(ring []geom.Point) []geom.Point {
	if len(ring) == 0 {
		return nil
	}
	out := make([]geom.Point, 0, len(ring))
	for _, pt := range ring {
		if len(out) > 0 && b.coincident(out[len(out)-1], pt) {
			continue
		}
		out = append(out, pt)
	}
	// Drop an explicit closing vertex; rings are stored open.
	if len(out) > 1 && b.coincident(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	if len(out) < 3 {
		return nil
	}
	return out
}

func (b *Backend) coincident(a, c geom.Point) bool {
	return math.Hypot(a.X-c.X, a.Y-c.Y) <= b.Tol
}

// regionsFromPolygon splits a clipping result into regions, rebuilding
// outer/hole relationships from ring containment rather than trusting the
// result's winding.
func regionsFromPolygon(p geom.Polygon) []region.Region {
	rings := make([][]geom.Point, 0, len(p))
	for _, ring := range p {
		rings = append(rings, append([]geom.Point(nil), ring...))
	}
	return region.AssembleRings(rings)
}
