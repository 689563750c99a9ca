// Package vector implements the vector-to-solid extrusion pipeline: it
// turns a 2D line-art document into a printable solid by deriving closed
// regions from its paths, repairing invalid boundaries, extruding the
// regions to a fixed depth, merging the result into one mesh, and
// normalizing its scale and position.
//
// Control flow is strictly linear per input file, with no state shared
// between runs: normalize format, load, extract per layer, repair,
// extrude, assemble, normalize scale and position, export.
package vector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chazu/solidconv/pkg/normalize"
	"github.com/chazu/solidconv/pkg/region"
	"github.com/chazu/solidconv/pkg/region/geomops"
	"github.com/chazu/solidconv/pkg/solid"
	"github.com/chazu/solidconv/pkg/vectordoc"
)

// ErrNoGeometryFound is returned when no extraction tier could derive a
// single region from any layer. This is a hard stop, never a silently
// empty output file.
var ErrNoGeometryFound = errors.New("no closed or thickenable geometry found in any layer")

// ErrExtrusionFailed is returned when regions were found but every one of
// them degenerated during extrusion. Kept distinct from
// ErrNoGeometryFound so diagnostics can tell "geometry existed but
// extrusion collapsed" from "no geometry existed".
var ErrExtrusionFailed = errors.New("extracted regions produced no solids")

// Convert runs the whole pipeline from an input vector file to an output
// STL file. On failure nothing is written, unless cfg.EmitFallbackSolid
// is set, in which case a placeholder plate is written to outputPath and
// the failure is still returned.
func Convert(ctx context.Context, inputPath, outputPath string, cfg Config) error {
	err := run(ctx, inputPath, outputPath, cfg)
	if err == nil {
		return nil
	}
	if cfg.EmitFallbackSolid {
		slog.Warn("conversion failed, writing fallback placeholder solid", "output", outputPath, "error", err)
		if saveErr := solid.SaveSTL(outputPath, solid.FallbackPlate()); saveErr != nil {
			slog.Error("fallback solid could not be written", "error", saveErr)
		}
	}
	return err
}

func run(ctx context.Context, inputPath, outputPath string, cfg Config) error {
	// Stage 1: pre-convert page-description formats. The temporary file,
	// if one is created, is removed on every exit path from here on.
	res, err := normalize.Run(ctx, inputPath, normalize.Options{
		Tool:    cfg.ConvertTool,
		Timeout: cfg.ConvertTimeout,
	})
	if err != nil {
		return err
	}
	defer res.Cleanup()

	// Stage 2: load the path document.
	doc, err := vectordoc.Load(res.Path)
	if err != nil {
		return err
	}
	slog.Info("loaded vector document", "layers", len(doc.Layers), "entities", doc.EntityCount())

	// Stage 3: extract regions per layer through the tier fallback.
	extractor := &region.Extractor{
		FlattenTolerance: cfg.FlattenTolerance,
		RibbonWidth:      cfg.RibbonWidth,
	}
	var candidates []region.Region
	for _, layer := range doc.Layers {
		regs, tier := extractor.Extract(layer)
		if tier == region.TierNone {
			slog.Warn("layer yielded no regions", "layer", layer.Name)
			continue
		}
		slog.Info("extracted regions", "layer", layer.Name, "regions", len(regs), "tier", tier.String())
		candidates = append(candidates, regs...)
	}
	if len(candidates) == 0 {
		return ErrNoGeometryFound
	}

	// Stage 4: repair or reject invalid regions. Losing one region is
	// recoverable; losing all of them is not.
	ops := geomops.New(cfg.RepairTolerance)
	var regions []region.Region
	for i, r := range candidates {
		repaired, err := region.Repair(ops, r)
		if err != nil {
			slog.Warn("skipping region", "index", i, "reason", err)
			continue
		}
		regions = append(regions, repaired...)
	}
	if len(regions) == 0 {
		return fmt.Errorf("%w: all %d candidate regions", region.ErrInvalidGeometry, len(candidates))
	}

	// Stage 5: extrude and assemble.
	var solids []*solid.Solid
	for i, r := range regions {
		s, err := solid.Extrude(r, cfg.Depth)
		if err != nil {
			slog.Warn("extrusion failed for region", "index", i, "error", err)
			continue
		}
		if s.IsEmpty() {
			slog.Warn("extrusion degenerated for region", "index", i)
			continue
		}
		solids = append(solids, s)
	}
	if len(solids) == 0 {
		return fmt.Errorf("%w (%d regions attempted)", ErrExtrusionFailed, len(regions))
	}
	assembled := solid.Merge(solids)

	// Stage 6: normalize scale and position.
	solid.NormalizeScale(assembled, cfg.Scale)
	solid.NormalizePosition(assembled)

	// Stage 7: export.
	if err := solid.SaveSTL(outputPath, assembled); err != nil {
		return err
	}
	slog.Info("exported solid", "output", outputPath, "triangles", assembled.TriangleCount())
	return nil
}
