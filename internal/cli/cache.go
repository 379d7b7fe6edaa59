package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kosirm/mindmap-writer-sub008/pkg/cache"
)

// cacheCommand creates the layout-cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	cmd.AddCommand(c.cacheStatsCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheStatsCommand creates the "cache stats" subcommand.
func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cached layout count and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, dir, err := openFileCache()
			if err != nil {
				return err
			}
			count, size, err := fc.Stats()
			if err != nil {
				return fmt.Errorf("read cache dir: %w", err)
			}
			printInfo("%d cached layouts, %.1f KiB", count, float64(size)/1024)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, dir, err := openFileCache()
			if err != nil {
				return err
			}
			if err := fc.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cache cleared")
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// openFileCache opens the local cache directory for management commands.
// These operate on the file backend only; a shared redis cache is owned
// by its deployment, not by this machine.
func openFileCache() (*cache.FileCache, string, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, "", fmt.Errorf("get cache dir: %w", err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, "", fmt.Errorf("open cache %s: %w", dir, err)
	}
	return fc, dir, nil
}
