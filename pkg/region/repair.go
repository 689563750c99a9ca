package region

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry marks a region that remained topologically invalid
// after repair. Callers skip such regions with a recorded reason; the run
// only fails if every region is lost this way.
var ErrInvalidGeometry = errors.New("region invalid after repair")

// Ops is the minimal capability a computational-geometry backend must
// provide to the repairer. The pipeline is written against this interface
// rather than any particular library's API; see the geomops sub-package
// for the default implementation.
type Ops interface {
	// MakeValid repairs ring-level defects: unclosed gaps, duplicate
	// vertices, degenerate rings. It may split a region into several.
	MakeValid(r Region) ([]Region, error)

	// SelfUnion resolves self-intersection and residual self-overlap by
	// computing the union of the region with itself. It may split a
	// region into several disjoint parts.
	SelfUnion(r Region) ([]Region, error)
}

// Repair validates r and, when it is invalid, applies backend repair
// followed by a self-union pass. Regions that come back empty are
// discarded rather than propagated as degenerate shapes. Repair never
// touches a region that is already valid, so well-formed input passes
// through byte-identical: repair must not over-correct.
func Repair(ops Ops, r Region) ([]Region, error) {
	r.Normalize()
	if r.Valid() {
		return []Region{r}, nil
	}

	fixed, err := ops.MakeValid(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}

	var out []Region
	for _, f := range fixed {
		if f.Valid() {
			f.Normalize()
			out = append(out, f)
			continue
		}
		unioned, err := ops.SelfUnion(f)
		if err != nil {
			continue // this part is lost, the others may survive
		}
		for _, u := range unioned {
			if u.Valid() && u.Area() >= minRingArea {
				u.Normalize()
				out = append(out, u)
			}
		}
	}

	if len(out) == 0 {
		return nil, ErrInvalidGeometry
	}
	return out, nil
}
