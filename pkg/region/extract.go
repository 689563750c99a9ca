package region

import (
	"log/slog"
	"math"
	"slices"

	"github.com/ctessum/geom"
	"honnef.co/go/curve"

	"github.com/chazu/solidconv/pkg/vectordoc"
)

// Tier identifies which extraction strategy produced a layer's regions.
type Tier int

const (
	// TierNone means no strategy yielded any region.
	TierNone Tier = iota
	// TierClosed extracts already-closed polygonal subpaths directly.
	TierClosed
	// TierPolygonized reassembles closed rings from the layer's flattened
	// line segments.
	TierPolygonized
	// TierRibbon thickens open strokes into fixed-width ribbon regions.
	TierRibbon
)

func (t Tier) String() string {
	switch t {
	case TierClosed:
		return "closed-polygons"
	case TierPolygonized:
		return "polygonized"
	case TierRibbon:
		return "ribbon-fallback"
	default:
		return "none"
	}
}

// Extractor derives regions from a layer using an ordered list of
// strategies, stopping at the first one that yields a result. Strategies
// signal "nothing found" by returning an empty slice, never by failing;
// real-world vector art is full of unclosed and self-crossing paths, and a
// single-strategy extractor would reject most of it.
type Extractor struct {
	// FlattenTolerance is the maximum distance between a curve and its
	// polyline approximation.
	FlattenTolerance float64
	// RibbonWidth is the stroke width used when thickening open lines
	// into printable ribbons.
	RibbonWidth float64
}

// Extract runs the strategy tiers in order and returns the regions of the
// first tier that produced any, along with the tier that did.
func (e *Extractor) Extract(layer *vectordoc.Layer) ([]Region, Tier) {
	if regs := e.closedRegions(layer); len(regs) > 0 {
		return regs, TierClosed
	}
	if regs := e.polygonizedRegions(layer); len(regs) > 0 {
		return regs, TierPolygonized
	}
	if regs := e.ribbonRegions(layer); len(regs) > 0 {
		return regs, TierRibbon
	}
	return nil, TierNone
}

// polyline is one flattened subpath.
type polyline struct {
	pts    []geom.Point
	closed bool
}

// subpathCloseEps is the endpoint distance below which a subpath without
// an explicit close element still counts as closed.
const subpathCloseEps = 1e-7

// flattenPath flattens a path into its subpaths as point sequences.
func flattenPath(p curve.BezPath, tol float64) []polyline {
	var subs []polyline
	var cur polyline
	flush := func() {
		if len(cur.pts) < 2 {
			cur = polyline{}
			return
		}
		if !cur.closed {
			first, last := cur.pts[0], cur.pts[len(cur.pts)-1]
			if math.Hypot(last.X-first.X, last.Y-first.Y) < subpathCloseEps {
				cur.pts = cur.pts[:len(cur.pts)-1]
				cur.closed = true
			}
		}
		subs = append(subs, cur)
		cur = polyline{}
	}
	for el := range p.Flatten(tol) {
		switch el.Kind {
		case curve.MoveToKind:
			flush()
			cur.pts = append(cur.pts, geom.Point{X: el.P0.X, Y: el.P0.Y})
		case curve.LineToKind:
			cur.pts = append(cur.pts, geom.Point{X: el.P0.X, Y: el.P0.Y})
		case curve.ClosePathKind:
			cur.closed = true
			flush()
		}
	}
	flush()
	return subs
}

// closedRegions is tier 1: collect subpaths that are already closed and
// assemble them into regions, preserving nested-hole relationships. Open
// subpaths are ignored entirely at this tier.
func (e *Extractor) closedRegions(layer *vectordoc.Layer) []Region {
	var rings [][]geom.Point
	for _, p := range layer.Paths {
		for _, sub := range flattenPath(p, e.FlattenTolerance) {
			if sub.closed && len(sub.pts) >= 3 {
				rings = append(rings, sub.pts)
			}
		}
	}
	return AssembleRings(rings)
}

// polygonizedRegions is tier 2: flatten every subpath into individual line
// segments and reassemble closed rings from segments that form cycles.
// This recovers outlines that were exported as disconnected lines.
func (e *Extractor) polygonizedRegions(layer *vectordoc.Layer) []Region {
	var segs [][2]geom.Point
	for _, p := range layer.Paths {
		for _, sub := range flattenPath(p, e.FlattenTolerance) {
			n := len(sub.pts)
			for i := 0; i+1 < n; i++ {
				segs = append(segs, [2]geom.Point{sub.pts[i], sub.pts[i+1]})
			}
			if sub.closed && n >= 2 {
				segs = append(segs, [2]geom.Point{sub.pts[n-1], sub.pts[0]})
			}
		}
	}
	rings := polygonize(segs, subpathCloseEps)
	return AssembleRings(rings)
}

// ribbonRegions is tier 3, the last resort: no closed ring could be
// assembled anywhere, so each open stroke is expanded into a round-cap,
// round-join ribbon of fixed width. One region per open entity, so pure
// line art still yields printable solids.
func (e *Extractor) ribbonRegions(layer *vectordoc.Layer) []Region {
	style := curve.DefaultStroke.WithWidth(e.RibbonWidth)
	var out []Region
	for _, p := range layer.Paths {
		if !hasOpenSubpath(p, e.FlattenTolerance) {
			continue
		}
		outline := slices.Collect(curve.StrokePath(p.Elements(), style, curve.StrokeOpts{}, e.FlattenTolerance))
		var rings [][]geom.Point
		for _, sub := range flattenPath(curve.BezPath(outline), e.FlattenTolerance) {
			if len(sub.pts) >= 3 {
				rings = append(rings, sub.pts)
			}
		}
		regs := AssembleRings(rings)
		if len(regs) == 0 {
			slog.Warn("ribbon expansion produced no region for open stroke")
			continue
		}
		out = append(out, largestRegion(regs))
	}
	return out
}

func hasOpenSubpath(p curve.BezPath, tol float64) bool {
	for _, sub := range flattenPath(p, tol) {
		if !sub.closed {
			return true
		}
	}
	return false
}

func largestRegion(regs []Region) Region {
	best := regs[0]
	for _, r := range regs[1:] {
		if r.Area() > best.Area() {
			best = r
		}
	}
	return best
}
