package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/themefont/pkg/integrations/googlefonts"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the font cache documents",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var withCatalog bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached font documents",
		Long: `Remove every <family>.json cache document from the fonts directory.
The local font list (google_fonts.json) is kept unless --catalog is given.
Stored font settings are not touched; use 'themefont refresh' for that.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			dir := cfg.FontsDir()

			count, err := clearCacheDir(dir, withCatalog)
			if os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}
			if err != nil {
				return err
			}

			printSuccess("Cleared %d cached documents", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withCatalog, "catalog", false, "also remove the local font list")

	return cmd
}

// clearCacheDir removes the JSON documents directly inside dir and returns
// how many were removed.
func clearCacheDir(dir string, withCatalog bool) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		if name == googlefonts.ListFile && !withCatalog {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err == nil {
			count++
		}
	}
	return count, nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the fonts directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			fmt.Println(cfg.FontsDir())
			return nil
		},
	}
}
