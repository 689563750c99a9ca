// Package imageconv converts raster images to printable base plates. The
// plate preserves the image's aspect ratio at a caller-chosen width;
// relief generation from pixel intensity is a separate concern and is not
// done here.
package imageconv

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	// Register the decoders for the supported raster formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/chazu/solidconv/pkg/solid"
)

// Options sets the physical plate dimensions derived from the image.
type Options struct {
	WidthMM float64 // plate width; height follows the image aspect ratio
	DepthMM float64 // plate thickness
}

// DefaultOptions returns the standard plate dimensions.
func DefaultOptions() Options {
	return Options{WidthMM: 100, DepthMM: 3}
}

// Convert decodes the image at inputPath and writes an STL plate sized to
// its aspect ratio.
func Convert(inputPath, outputPath string, opt Options) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("imageconv: open %s: %w", inputPath, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("imageconv: decode %s: %w", inputPath, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("imageconv: %s has invalid dimensions %dx%d", inputPath, cfg.Width, cfg.Height)
	}

	aspect := float64(cfg.Height) / float64(cfg.Width)
	heightMM := opt.WidthMM * aspect
	slog.Info("building plate from image", "format", format,
		"pixels", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"plate", fmt.Sprintf("%.1fx%.1fx%.1f", opt.WidthMM, heightMM, opt.DepthMM))

	return solid.SaveSTL(outputPath, solid.Plate(opt.WidthMM, heightMM, opt.DepthMM))
}
