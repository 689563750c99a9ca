// Package meshconv converts polygon-mesh containers (3MF) to normalized
// STL. Unlike the vector pipeline there is no geometry derivation here:
// every mesh object in the container is concatenated into one solid and
// re-exported.
package meshconv

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/hpinc/go3mf"

	"github.com/chazu/solidconv/pkg/solid"
)

// ErrEmptyScene is returned when the container holds no mesh geometry.
var ErrEmptyScene = errors.New("mesh container holds no geometry")

// Convert loads a 3MF file, merges all of its mesh objects into a single
// solid, and writes it to outputPath as STL. Component transforms are not
// applied; objects are merged in their stored coordinates.
func Convert(inputPath, outputPath string) error {
	r, err := go3mf.OpenReader(inputPath)
	if err != nil {
		return fmt.Errorf("meshconv: open %s: %w", inputPath, err)
	}
	defer r.Close()

	var model go3mf.Model
	if err := r.Decode(&model); err != nil {
		return fmt.Errorf("meshconv: decode %s: %w", inputPath, err)
	}

	merged, err := FromModel(&model)
	if err != nil {
		return err
	}
	slog.Info("merged mesh objects", "triangles", merged.TriangleCount())
	return solid.SaveSTL(outputPath, merged)
}

// FromModel merges every mesh object of a decoded model into one solid.
func FromModel(model *go3mf.Model) (*solid.Solid, error) {
	merged := &solid.Solid{}
	objects := 0
	for _, obj := range model.Resources.Objects {
		if obj.Mesh == nil {
			continue
		}
		appendMesh(merged, obj.Mesh)
		objects++
	}
	if merged.IsEmpty() {
		return nil, ErrEmptyScene
	}
	if objects > 1 {
		slog.Info("container held multiple objects, concatenated", "objects", objects)
	}
	return merged, nil
}

func appendMesh(dst *solid.Solid, m *go3mf.Mesh) {
	at := func(i uint32) v3.Vec {
		p := m.Vertices.Vertex[i]
		return v3.Vec{X: float64(p.X()), Y: float64(p.Y()), Z: float64(p.Z())}
	}
	for _, t := range m.Triangles.Triangle {
		dst.Triangles = append(dst.Triangles, &sdf.Triangle3{at(t.V1), at(t.V2), at(t.V3)})
	}
}
