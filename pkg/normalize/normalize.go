// Package normalize pre-converts page-description inputs (EPS, PS, PDF)
// to polyline-only DXF by invoking an external conversion tool. Inputs
// that are already path-based pass through untouched.
package normalize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrConversionTool is returned when the external tool produced no usable
// output file. A non-zero exit that still leaves an output file behind is
// treated as a warning, not a failure: some converters are noisy but
// successful.
var ErrConversionTool = errors.New("format conversion produced no output file")

// DefaultTool is the external converter invoked for page-description
// formats.
const DefaultTool = "pstoedit"

// DefaultTimeout bounds the external conversion; the tool offers no
// timeout of its own and a hung subprocess must not hang the run.
const DefaultTimeout = 60 * time.Second

// Options configures the pre-conversion step.
type Options struct {
	Tool    string
	Timeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Tool == "" {
		o.Tool = DefaultTool
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// Result is the outcome of normalization: the path to continue loading
// from, and the temporary file to remove when the run ends (empty when
// the input passed through unchanged).
type Result struct {
	Path string
	temp string
}

// Cleanup removes the temporary conversion output, if any. It is safe to
// call on every exit path, including when no temporary was created.
func (r Result) Cleanup() {
	if r.temp == "" {
		return
	}
	if err := os.Remove(r.temp); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove conversion temp file", "path", r.temp, "error", err)
	}
}

// NeedsConversion reports whether the file extension indicates a
// page-description format that must be pre-converted before loading.
func NeedsConversion(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".eps", ".ps", ".pdf":
		return true
	default:
		return false
	}
}

// Run normalizes input: page-description formats are converted to a
// sibling temporary DXF with polylines only, everything else passes
// through. Success is judged by the existence of the output file, not by
// the tool's exit code alone.
func Run(ctx context.Context, input string, opt Options) (Result, error) {
	if !NeedsConversion(input) {
		return Result{Path: input}, nil
	}
	opt = opt.withDefaults()

	temp := input + ".converted.dxf"
	slog.Info("page-description input detected, converting", "input", input, "tool", opt.Tool)

	ctx, cancel := context.WithTimeout(ctx, opt.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, opt.Tool, "-dt", "-f", "dxf:-polyaslines", input, temp)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	runErr := cmd.Run()
	if runErr != nil {
		slog.Warn("conversion tool exited abnormally", "tool", opt.Tool, "error", runErr, "stderr", stderr.String())
	}

	if _, err := os.Stat(temp); err != nil {
		// No output file at all: remove any partial state and fail.
		os.Remove(temp)
		if ctx.Err() != nil {
			return Result{}, fmt.Errorf("%w: %s timed out after %s", ErrConversionTool, opt.Tool, opt.Timeout)
		}
		return Result{}, fmt.Errorf("%w: %s: %v", ErrConversionTool, opt.Tool, runErr)
	}
	return Result{Path: temp, temp: temp}, nil
}
