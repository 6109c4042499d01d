// Package pipeline turns a declared diagram into an image file on disk.
//
// A run has four steps:
//
//  1. Validate: check the declaration and resolve the output path and format
//  2. Describe: emit the diagram as Graphviz DOT
//  3. Render: lay out and draw it, or reuse a cached artifact
//  4. Write: replace the output file atomically
//
// The output directory is checked before anything is rendered, and nothing is
// written unless rendering succeeded, so a failed run never leaves a partial
// file behind.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), logger)
//	result, err := runner.Execute(ctx, d, pipeline.Options{Format: "svg"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println("wrote", result.Path)
package pipeline

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/archdiagram/pkg/diagram"
	apperrors "github.com/matzehuels/archdiagram/pkg/errors"
	"github.com/matzehuels/archdiagram/pkg/render"
)

// Options configures a single run. Zero values fall back to the diagram's
// own output settings.
type Options struct {
	// Format overrides the diagram's output format. When empty and Output
	// has a renderable extension, the extension decides.
	Format string

	// Output overrides the output path. Used verbatim; no extension is added.
	Output string

	// Refresh skips the cache lookup but still stores the new render.
	Refresh bool
}

// Result describes a completed run.
type Result struct {
	RunID    uuid.UUID
	Path     string
	Format   string
	Size     int
	CacheHit bool
	Stats    Stats
}

// Stats contains counts and timings of a run.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	ClusterCount int
	RenderTime   time.Duration
	WriteTime    time.Duration
}

// resolve fills in the format and path from d and validates both.
func (o Options) resolve(d *diagram.Diagram) (format, path string, err error) {
	format = strings.ToLower(o.Format)
	if format == "" && o.Output != "" {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(o.Output), "."))
		if render.ValidateFormat(ext) == nil {
			format = ext
		}
	}
	if format == "" {
		format = d.Options().Format
	}
	if err := render.ValidateFormat(format); err != nil {
		return "", "", err
	}

	path = o.Output
	if path == "" {
		path = filepath.FromSlash(d.Options().Filename) + "." + format
	}
	if err := apperrors.ValidateOutputPath(path); err != nil {
		return "", "", err
	}
	return format, path, nil
}
