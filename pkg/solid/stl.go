package solid

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
)

// ErrExport is returned when the final solid cannot be serialized.
var ErrExport = errors.New("solid export failed")

// SaveSTL writes the solid to path as binary STL. An empty solid is an
// export error: the pipeline must never write a file with no geometry in
// it.
func SaveSTL(path string, s *Solid) error {
	if s.IsEmpty() {
		return fmt.Errorf("%w: solid has no triangles", ErrExport)
	}
	if err := render.SaveSTL(path, s.Triangles); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	return nil
}
