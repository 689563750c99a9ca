package vector

import (
	"time"

	"github.com/chazu/solidconv/pkg/solid"
)

// Config holds every per-run heuristic of the vector pipeline. There is
// no global state: tests and callers override fields here instead of
// touching pipeline logic.
type Config struct {
	// Depth is the extrusion depth in output length units.
	Depth float64

	// RibbonWidth is the stroke width used by the line-thickening
	// extraction fallback.
	RibbonWidth float64

	// FlattenTolerance is the maximum curve-to-polyline deviation used
	// when discretizing paths.
	FlattenTolerance float64

	// RepairTolerance is the vertex-coincidence distance used by
	// geometry repair.
	RepairTolerance float64

	// Scale is the unit-inference policy applied to the assembled solid.
	Scale solid.ScalePolicy

	// ConvertTool and ConvertTimeout configure the external
	// page-description pre-converter.
	ConvertTool    string
	ConvertTimeout time.Duration

	// EmitFallbackSolid, when set, writes a fixed placeholder plate to
	// the output path on unrecovered failure instead of leaving nothing
	// behind. The run still reports the failure either way; the default
	// is to never fabricate output.
	EmitFallbackSolid bool
}

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Depth:            2.0,
		RibbonWidth:      1.0,
		FlattenTolerance: 0.01,
		RepairTolerance:  1e-6,
		Scale:            solid.DefaultScalePolicy(),
	}
}
