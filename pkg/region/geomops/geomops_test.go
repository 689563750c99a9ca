package geomops_test

import (
	"errors"
	"math"
	"testing"

	"github.com/ctessum/geom"
	"github.com/google/go-cmp/cmp"

	"github.com/chazu/solidconv/pkg/region"
	"github.com/chazu/solidconv/pkg/region/geomops"
)

func TestMakeValidCleansRings(t *testing.T) {
	// Duplicate consecutive vertices and an explicit closing vertex; the
	// cleaned ring must be the plain 4-vertex square.
	r := region.Region{Outer: []geom.Point{
		{X: 0, Y: 0},
		{X: 0, Y: 0}, // duplicate
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 10, Y: 10}, // duplicate
		{X: 0, Y: 10},
		{X: 0, Y: 0}, // explicit close
	}}

	out, err := geomops.New(1e-6).MakeValid(r)
	if err != nil {
		t.Fatalf("MakeValid: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("MakeValid returned %d regions, want 1", len(out))
	}
	want := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if diff := cmp.Diff(want, out[0].Outer); diff != "" {
		t.Fatalf("cleaned ring mismatch (-want +got):\n%s", diff)
	}
	if a := out[0].Area(); math.Abs(a-100) > 1e-9 {
		t.Fatalf("cleaned region area = %v, want 100", a)
	}
}

func TestMakeValidDropsDegenerateHole(t *testing.T) {
	r := region.Region{
		Outer: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Holes: [][]geom.Point{{{X: 1, Y: 1}, {X: 2, Y: 2}}}, // two points
	}

	out, err := geomops.New(1e-6).MakeValid(r)
	if err != nil {
		t.Fatalf("MakeValid: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("MakeValid returned %d regions, want 1", len(out))
	}
	if len(out[0].Holes) != 0 {
		t.Fatalf("degenerate hole survived: %d holes", len(out[0].Holes))
	}
}

func TestMakeValidEmptyRegion(t *testing.T) {
	out, err := geomops.New(1e-6).MakeValid(region.Region{})
	if err != nil {
		t.Fatalf("MakeValid: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("MakeValid of empty region returned %d regions, want 0", len(out))
	}
}

func TestSelfUnionRebuildsRegions(t *testing.T) {
	// The clipping result comes back as a single polygon or a
	// multi-polygon depending on the input; either way SelfUnion must
	// rebuild plain regions from it.
	r := region.Region{Outer: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}}
	out, err := geomops.New(1e-6).SelfUnion(r)
	if err != nil {
		t.Fatalf("SelfUnion: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("SelfUnion returned %d regions, want 1", len(out))
	}
	if a := out[0].Area(); math.Abs(a-100) > 1e-9 {
		t.Fatalf("SelfUnion region area = %v, want 100", a)
	}
}

func TestRepairPassesValidThrough(t *testing.T) {
	r := region.Region{Outer: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}}
	out, err := region.Repair(geomops.New(1e-6), r)
	if err != nil {
		t.Fatalf("Repair: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("Repair returned %d regions, want 1", len(out))
	}
	if diff := cmp.Diff(r.Outer, out[0].Outer); diff != "" {
		t.Fatalf("Repair changed a valid region (-want +got):\n%s", diff)
	}
}

func TestRepairNeverEmitsInvalidRegions(t *testing.T) {
	// A bowtie is self-intersecting. Repair either resolves it into
	// valid regions or rejects it; it must never pass an invalid region
	// downstream.
	bowtie := region.Region{Outer: []geom.Point{
		{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10},
	}}

	out, err := region.Repair(geomops.New(1e-6), bowtie)
	if err != nil {
		if !errors.Is(err, region.ErrInvalidGeometry) {
			t.Fatalf("Repair error = %v, want ErrInvalidGeometry", err)
		}
		return
	}
	if len(out) == 0 {
		t.Fatal("Repair returned no regions and no error")
	}
	for i, r := range out {
		if !r.Valid() {
			t.Fatalf("Repair emitted invalid region %d", i)
		}
		if r.Area() <= 0 {
			t.Fatalf("Repair emitted empty region %d", i)
		}
	}
}
