// Package cli implements the mindmap command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kosirm/mindmap-writer-sub008/pkg/buildinfo"
	"github.com/kosirm/mindmap-writer-sub008/pkg/cache"
	"github.com/kosirm/mindmap-writer-sub008/pkg/layout"
	"github.com/kosirm/mindmap-writer-sub008/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mindmap"

	// redisAddrEnv selects a shared redis cache backend when set.
	redisAddrEnv = "MINDMAP_REDIS_ADDR"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "mindmap",
		Short:        "Mindmap computes spatial layouts for mindmap documents",
		Long:         `Mindmap is a CLI tool for laying out mindmap trees radially or linearly, resolving overlaps, and editing node structure, with JSON, DOT, SVG and PNG export.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(ctx, noCache), c.Logger)
}

// newCache selects the cache backend: null when disabled, redis when
// MINDMAP_REDIS_ADDR is set, file otherwise. Backend failures degrade to
// a null cache rather than failing the command.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	if addr := os.Getenv(redisAddrEnv); addr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: addr})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "addr", addr, "err", err)
			return cache.NewNullCache()
		}
		return rc
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/mindmap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	return strings.Split(s, ",")
}

// loadLayoutConfig loads spacing settings from a TOML file, or defaults
// when path is empty.
func loadLayoutConfig(path string) (layout.Config, error) {
	return layout.LoadConfig(path)
}
