package vectordoc

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/rpaloschi/dxf-go/core"
	"github.com/rpaloschi/dxf-go/document"
	"github.com/rpaloschi/dxf-go/entities"
	"honnef.co/go/curve"
)

// closeEps is the endpoint distance below which a polyline is considered
// closed even without an explicit closing vertex.
const closeEps = 1e-7

// Load parses a DXF file into a Document. Entities are grouped into layers
// by their DXF layer name, preserving first-appearance order. Entity kinds
// that carry no path geometry (text, dimensions) are skipped; splines are
// skipped with a warning since the pre-conversion step is expected to have
// flattened curves to polylines already.
//
// Load returns ErrEmptyDocument when the file parses but yields no paths.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vectordoc: open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := document.DxfDocumentFromStream(f)
	if err != nil {
		return nil, fmt.Errorf("vectordoc: parse %s: %w", path, err)
	}

	byName := make(map[string]*Layer)
	var order []string
	add := func(layer string, p curve.BezPath) {
		if len(p) == 0 {
			return
		}
		l, ok := byName[layer]
		if !ok {
			l = &Layer{Name: layer}
			byName[layer] = l
			order = append(order, layer)
		}
		l.Paths = append(l.Paths, p)
	}

	for _, ent := range doc.Entities.Entities {
		switch e := ent.(type) {
		case *entities.Polyline:
			add(e.LayerName, polylinePath(e.Vertices))
		case *entities.Line:
			add(e.LayerName, linePath(e.Start, e.End))
		case *entities.Spline:
			slog.Warn("skipping spline entity; pre-convert input with polyline output")
		default:
			slog.Debug("skipping non-path entity", "type", fmt.Sprintf("%T", ent))
		}
	}

	d := &Document{}
	for _, name := range order {
		if !byName[name].IsEmpty() {
			d.Layers = append(d.Layers, byName[name])
		}
	}
	if len(d.Layers) == 0 {
		return nil, fmt.Errorf("vectordoc: %s: %w", path, ErrEmptyDocument)
	}
	return d, nil
}

// polylinePath converts a DXF polyline vertex chain to a path. A chain
// whose endpoints coincide becomes an explicitly closed subpath.
func polylinePath(verts entities.VertexSlice) curve.BezPath {
	if len(verts) < 2 {
		return nil
	}
	pts := make([]curve.Point, len(verts))
	for i, v := range verts {
		pts[i] = curve.Pt(v.Location.X, v.Location.Y)
	}

	var p curve.BezPath
	p = append(p, curve.MoveTo(pts[0]))
	last := len(pts) - 1
	closed := math.Hypot(pts[last].X-pts[0].X, pts[last].Y-pts[0].Y) < closeEps
	if closed {
		last-- // drop the duplicated endpoint, ClosePath supplies it
	}
	for _, pt := range pts[1 : last+1] {
		p = append(p, curve.LineTo(pt))
	}
	if closed {
		p = append(p, curve.ClosePath())
	}
	if len(p) < 2 {
		return nil
	}
	return p
}

// linePath converts a single DXF line segment to a two-element path.
func linePath(start, end core.Point) curve.BezPath {
	return curve.BezPath{
		curve.MoveTo(curve.Pt(start.X, start.Y)),
		curve.LineTo(curve.Pt(end.X, end.Y)),
	}
}
