// solidconv converts heterogeneous design inputs into printable STL
// solids. Each converter is an independent subcommand sharing the same
// contract: consume one design artifact, produce one solid mesh, or fail
// loudly with a non-zero exit status.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chazu/solidconv/pkg/imageconv"
	"github.com/chazu/solidconv/pkg/meshconv"
	"github.com/chazu/solidconv/pkg/vector"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "solidconv",
		Short:         "Convert design inputs (vector art, meshes, images) to printable STL",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVectorCmd(), newMeshCmd(), newImageCmd())
	return root
}

func newVectorCmd() *cobra.Command {
	cfg := vector.DefaultConfig()
	var timeoutSec int

	cmd := &cobra.Command{
		Use:   "vector <input.(dxf|eps|ps|pdf)> <output.stl>",
		Short: "Extrude 2D vector line art into a solid",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if timeoutSec > 0 {
				cfg.ConvertTimeout = time.Duration(timeoutSec) * time.Second
			}
			return vector.Convert(cmd.Context(), args[0], args[1], cfg)
		},
	}
	cmd.Flags().Float64Var(&cfg.Depth, "depth", cfg.Depth, "extrusion depth in mm")
	cmd.Flags().Float64Var(&cfg.RibbonWidth, "ribbon-width", cfg.RibbonWidth, "width used when thickening open strokes")
	cmd.Flags().StringVar(&cfg.ConvertTool, "convert-tool", "", "page-description converter binary (default pstoedit)")
	cmd.Flags().IntVar(&timeoutSec, "convert-timeout", 0, "page-description conversion timeout in seconds")
	cmd.Flags().BoolVar(&cfg.EmitFallbackSolid, "fallback-solid", false, "write a placeholder plate on failure instead of nothing")
	return cmd
}

func newMeshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mesh <input.3mf> <output.stl>",
		Short: "Merge a mesh container into a single STL solid",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return meshconv.Convert(args[0], args[1])
		},
	}
}

func newImageCmd() *cobra.Command {
	opt := imageconv.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "image <input.(png|jpg|gif|bmp|tiff)> <output.stl>",
		Short: "Build an aspect-correct base plate from a raster image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return imageconv.Convert(args[0], args[1], opt)
		},
	}
	cmd.Flags().Float64Var(&opt.WidthMM, "width", opt.WidthMM, "plate width in mm")
	cmd.Flags().Float64Var(&opt.DepthMM, "plate-depth", opt.DepthMM, "plate thickness in mm")
	return cmd
}
