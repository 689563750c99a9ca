// Package vectordoc loads 2D vector drawings into an in-memory document
// model: an ordered set of layers, each holding the paths of its source
// entities. The document is read-only after load; downstream stages derive
// their own geometry from it and never mutate it.
package vectordoc

import (
	"errors"

	"honnef.co/go/curve"
)

// ErrEmptyDocument is returned when a file loads but contains no usable
// path geometry at all. An empty document is a terminal condition for a
// conversion run, never a silently empty result.
var ErrEmptyDocument = errors.New("document contains no usable path geometry")

// Layer is one path-drawing unit of a document. Paths appear in source
// order, one BezPath per source entity.
type Layer struct {
	Name  string
	Paths []curve.BezPath
}

// IsEmpty returns true if the layer holds no paths.
func (l *Layer) IsEmpty() bool {
	return len(l.Paths) == 0
}

// Bounds returns the union of the bounding boxes of all paths on the layer.
func (l *Layer) Bounds() curve.Rect {
	var r curve.Rect
	for i, p := range l.Paths {
		if i == 0 {
			r = p.BoundingBox()
			continue
		}
		r = r.Union(p.BoundingBox())
	}
	return r
}

// Document is an ordered collection of layers. Layer order follows the
// source file; it affects logging and traceability only, since all layers
// are merged into one solid downstream.
type Document struct {
	Layers []*Layer
}

// EntityCount returns the total number of paths across all layers.
func (d *Document) EntityCount() int {
	n := 0
	for _, l := range d.Layers {
		n += len(l.Paths)
	}
	return n
}
