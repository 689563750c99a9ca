package solid

import (
	"log/slog"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ScalePolicy holds the unit-inference heuristic thresholds. Vector
// drawings frequently arrive in ambiguous units: a logo traced at "10
// units" could mean 10 mm or 10 inches. The policy looks at the largest
// planar extent M of the assembled solid and guesses:
//
//   - M < TinyMax: the drawing is too small to be physically meaningful;
//     scale it so the largest planar extent becomes TargetSize mm.
//   - TinyMax <= M < InchMax: the drawing is likely in inches; convert
//     to millimeters.
//   - M >= InchMax: already plausible millimeters, leave it alone.
//
// This is a heuristic, not a measurement. An explicit-unit input should
// override it once one exists.
type ScalePolicy struct {
	TinyMax    float64 // below this, assume an abstract small scale
	InchMax    float64 // below this (and above TinyMax), assume inches
	TargetSize float64 // target largest extent for tiny drawings
	InchToMM   float64 // inch conversion factor
}

// DefaultScalePolicy returns the standard thresholds.
func DefaultScalePolicy() ScalePolicy {
	return ScalePolicy{
		TinyMax:    15,
		InchMax:    50,
		TargetSize: 100,
		InchToMM:   25.4,
	}
}

// factor returns the uniform scale factor for a solid whose largest
// planar extent is m.
func (p ScalePolicy) factor(m float64) float64 {
	switch {
	case m <= 0:
		return 1
	case m < p.TinyMax:
		return p.TargetSize / m
	case m < p.InchMax:
		return p.InchToMM
	default:
		return 1
	}
}

// NormalizeScale applies the unit heuristic to the solid and returns the
// factor that was applied. Running it on its own output is a no-op, since
// both branches leave the largest extent at or above InchMax.
func NormalizeScale(s *Solid, p ScalePolicy) float64 {
	ext := s.Extents()
	m := fmax(ext.X, ext.Y) // planar axes only; depth says nothing about units
	k := p.factor(m)
	if k != 1 {
		slog.Info("unit heuristic rescaling solid", "extent", m, "factor", k)
		s.Scale(k)
	}
	return k
}

// NormalizePosition centers the solid's horizontal centroid on the origin
// and drops its lowest point onto the build plate at z=0.
func NormalizePosition(s *Solid) {
	c := s.Centroid()
	s.Translate(v3.Vec{X: -c.X, Y: -c.Y, Z: -c.Z})
	min, _ := s.BoundingBox()
	s.Translate(v3.Vec{Z: -min.Z})
}
