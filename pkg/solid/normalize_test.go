package solid_test

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/solidconv/pkg/solid"
)

func TestNormalizeScaleHeuristic(t *testing.T) {
	tests := []struct {
		name       string
		w, h       float64
		wantFactor float64
		wantExtent float64
	}{
		{"tiny drawing scaled to target", 10, 4, 10, 100},
		{"inch-range drawing converted", 30, 20, 25.4, 762},
		{"plausible millimeters untouched", 80, 10, 1, 80},
		{"boundary at inch threshold", 50, 50, 1, 50},
		{"boundary at tiny threshold", 15, 15, 25.4, 381},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := solid.Plate(tt.w, tt.h, 2)
			got := solid.NormalizeScale(s, solid.DefaultScalePolicy())
			if math.Abs(got-tt.wantFactor) > 1e-9 {
				t.Fatalf("factor = %v, want %v", got, tt.wantFactor)
			}
			ext := s.Extents()
			m := math.Max(ext.X, ext.Y)
			if math.Abs(m-tt.wantExtent) > 1e-9 {
				t.Fatalf("largest planar extent = %v, want %v", m, tt.wantExtent)
			}
		})
	}
}

func TestNormalizeScaleIgnoresDepth(t *testing.T) {
	// A 100mm-tall solid with a tiny footprint: only the planar axes
	// drive the heuristic, so it still gets scaled up.
	s := solid.Plate(10, 10, 100)
	if got := solid.NormalizeScale(s, solid.DefaultScalePolicy()); got != 10 {
		t.Fatalf("factor = %v, want 10", got)
	}
}

func TestNormalizeScaleIdempotent(t *testing.T) {
	s := solid.Plate(10, 4, 2)
	solid.NormalizeScale(s, solid.DefaultScalePolicy())
	if got := solid.NormalizeScale(s, solid.DefaultScalePolicy()); got != 1 {
		t.Fatalf("second NormalizeScale factor = %v, want 1", got)
	}
}

func TestNormalizePosition(t *testing.T) {
	s := solid.Plate(10, 10, 2)
	s.Translate(v3.Vec{X: 37, Y: -12, Z: 5})
	solid.NormalizePosition(s)

	c := s.Centroid()
	if math.Abs(c.X) > 1e-9 || math.Abs(c.Y) > 1e-9 {
		t.Fatalf("horizontal centroid = (%v, %v), want origin", c.X, c.Y)
	}
	min, _ := s.BoundingBox()
	if math.Abs(min.Z) > 1e-9 {
		t.Fatalf("min z = %v, want 0 (floored to build plate)", min.Z)
	}
}

func TestNormalizePositionIdempotent(t *testing.T) {
	s := solid.Plate(10, 10, 2)
	s.Translate(v3.Vec{X: 5, Y: 5, Z: 5})
	solid.NormalizePosition(s)
	before, _ := s.BoundingBox()

	solid.NormalizePosition(s)
	after, _ := s.BoundingBox()
	if math.Abs(before.X-after.X) > 1e-9 || math.Abs(before.Y-after.Y) > 1e-9 || math.Abs(before.Z-after.Z) > 1e-9 {
		t.Fatalf("NormalizePosition moved an already-normalized solid: %v -> %v", before, after)
	}
}
