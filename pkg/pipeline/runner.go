package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kosirm/mindmap-writer-sub008/pkg/cache"
	"github.com/kosirm/mindmap-writer-sub008/pkg/doc"
	"github.com/kosirm/mindmap-writer-sub008/pkg/errors"
	"github.com/kosirm/mindmap-writer-sub008/pkg/export"
	"github.com/kosirm/mindmap-writer-sub008/pkg/layout"
	"github.com/kosirm/mindmap-writer-sub008/pkg/observability"
	"github.com/kosirm/mindmap-writer-sub008/pkg/tree"
)

// Result holds everything one pipeline execution produced.
type Result struct {
	// Tree is the loaded, validated document.
	Tree *tree.Tree

	// Layout is the computed spatial state.
	Layout *layout.Result

	// Artifacts maps format name to rendered bytes.
	Artifacts map[string][]byte

	// CacheHit reports whether the layout came from the cache.
	CacheHit bool

	// Stats holds per-stage timings.
	Stats Stats
}

// Stats records per-stage timings and sizes for one execution.
type Stats struct {
	LoadTime   time.Duration
	LayoutTime time.Duration
	ExportTime time.Duration
	NodeCount  int
}

// Runner executes the load → validate → layout → export pipeline with
// caching. It is stateless apart from the cache and logger, so a single
// Runner can serve concurrent executions with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching via
// NullCache; a nil logger falls back to log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete pipeline for one document.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Load
	loadStart := time.Now()
	t, err := r.load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Tree = t
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = t.Len()

	r.Logger.Info("loaded document",
		"nodes", t.Len(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	res, hit, err := r.LayoutWithCacheInfo(ctx, t, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = res
	result.CacheHit = hit
	result.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Info("computed layout",
		"orientation", opts.Orientation,
		"warnings", len(res.Warnings),
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Export
	exportStart := time.Now()
	artifacts, err := Export(t, res, opts.Formats)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)

	r.Logger.Info("exported artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// LayoutWithCacheInfo computes the layout with caching and reports
// whether the result came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, t *tree.Tree, opts Options) (*layout.Result, bool, error) {
	key, keyErr := r.layoutKey(t, opts)

	if keyErr == nil && !opts.NoCache {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached layout.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return &cached, true, nil
			}
			// Corrupt entry, recompute below.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	start := time.Now()
	observability.Engine().OnLayoutStart(ctx, opts.Orientation.String(), t.Len())
	res, err := layout.Layout(t, opts.Orientation, opts.Config)
	warnings := 0
	if res != nil {
		warnings = len(res.Warnings)
	}
	observability.Engine().OnLayoutComplete(ctx, opts.Orientation.String(), t.Len(), warnings, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if keyErr == nil && !opts.NoCache {
		if data, err := json.Marshal(res); err == nil {
			if r.Cache.Set(ctx, key, data, DefaultCacheTTL) == nil {
				observability.Cache().OnCacheSet(ctx, "layout", len(data))
			}
		}
	}

	return res, false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, t *tree.Tree, opts Options) (*layout.Result, error) {
	res, _, err := r.LayoutWithCacheInfo(ctx, t, opts)
	return res, err
}

// Export renders the requested artifact formats from a layout result.
func Export(t *tree.Tree, res *layout.Result, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatJSON:
			data, err = export.MarshalPositions(res)
		case FormatDOT:
			data = []byte(export.ToDOT(t, res))
		case FormatSVG:
			data, err = export.RenderSVG(export.ToDOT(t, res))
		case FormatPNG:
			data, err = export.RenderPNG(export.ToDOT(t, res))
		default:
			err = fmt.Errorf("unknown format %q", format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// load reads the document from opts, preferring a pre-loaded tree.
func (r *Runner) load(opts Options) (*tree.Tree, error) {
	if opts.Tree != nil {
		return opts.Tree, opts.Tree.Validate()
	}
	t, err := doc.ReadFile(opts.Input)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", opts.Input)
		}
		return nil, err
	}
	return t, nil
}

// layoutKey builds the cache key for one layout computation. The key
// hashes the serialized tree, so any structural or size change misses.
func (r *Runner) layoutKey(t *tree.Tree, opts Options) (string, error) {
	data, err := doc.Marshal(t)
	if err != nil {
		return "", err
	}
	return cache.LayoutKey(cache.Fingerprint(data), opts.Orientation.String(), opts.Config), nil
}
