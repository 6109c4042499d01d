package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/archdiagram/pkg/cache"
	"github.com/matzehuels/archdiagram/pkg/diagram"
	"github.com/matzehuels/archdiagram/pkg/observability"
	"github.com/matzehuels/archdiagram/pkg/render"
)

// Runner executes diagram runs against an artifact cache.
//
// A Runner holds no per-run state; it is safe for concurrent use as long as
// its cache is.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner returns a runner. A nil cache disables caching and a nil logger
// uses log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute validates d, renders it and writes the result to disk.
func (r *Runner) Execute(ctx context.Context, d *diagram.Diagram, opts Options) (*Result, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	format, path, err := opts.resolve(d)
	if err != nil {
		return nil, err
	}
	if err := render.CheckOutputDir(path); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:  uuid.New(),
		Path:   path,
		Format: format,
		Stats: Stats{
			NodeCount:    d.NodeCount(),
			EdgeCount:    d.EdgeCount(),
			ClusterCount: d.ClusterCount(),
		},
	}
	logger := r.Logger.With("run", result.RunID.String()[:8])
	logger.Debug("declared diagram",
		"title", d.Title(),
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"clusters", result.Stats.ClusterCount)

	renderStart := time.Now()
	data, hit, err := r.render(ctx, d, format, opts.Refresh)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheHit = hit
	result.Size = len(data)
	logger.Debug("rendered diagram",
		"format", format,
		"bytes", len(data),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	writeStart := time.Now()
	err = render.WriteFile(path, data)
	observability.Pipeline().OnWrite(ctx, path, len(data), err)
	if err != nil {
		return nil, err
	}
	result.Stats.WriteTime = time.Since(writeStart)
	logger.Debug("wrote diagram", "path", path, "bytes", len(data))

	return result, nil
}

func (r *Runner) render(ctx context.Context, d *diagram.Diagram, format string, refresh bool) ([]byte, bool, error) {
	dot := render.ToDOT(d)
	key := cache.ArtifactKey(dot, format)

	if !refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Warn("cache lookup failed", "error", err)
		case hit:
			observability.Cache().OnCacheHit(ctx, key)
			return data, true, nil
		default:
			observability.Cache().OnCacheMiss(ctx, key)
		}
	}

	observability.Pipeline().OnRenderStart(ctx, format, d.NodeCount())
	start := time.Now()
	data, err := render.Render(ctx, dot, format)
	observability.Pipeline().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		r.Logger.Warn("cache store failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, key, len(data))
	}
	return data, false, nil
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
