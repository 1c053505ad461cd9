package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/themefont/pkg/server"
	"github.com/matzehuels/themefont/pkg/webfont"
)

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		printCSS bool
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [family]",
		Short: "Build or read the cached @font-face CSS for a family",
		Long: `Build or read the cached @font-face CSS for a font family.

The family defaults to WEB_FONT. On a cache miss the catalog is fetched
(remote with GOOGLE_FONT_KEY, local copy otherwise), the allowed styles are
downloaded and embedded, and the result is written to
assets/source/fonts/<family>.json. Cached entries are served as-is until
'themefont refresh' trashes them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd.Context(), args, printCSS, save)
		},
	}

	cmd.Flags().BoolVar(&printCSS, "css", false, "print the CSS to stdout")
	cmd.Flags().BoolVar(&save, "save", false, "also store the family as the active font settings")

	return cmd
}

func (c *CLI) runResolve(ctx context.Context, args []string, printCSS, save bool) error {
	st, err := c.openStack(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	family, err := familyArg(st.cfg, args)
	if err != nil {
		return err
	}

	_, cached, err := st.cache.Get(ctx, family)
	if err != nil {
		c.Logger.Debug("font cache unreadable", "family", family, "err", err)
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Resolving %s...", family))
	spinner.Start()

	var resolveErr error
	if save {
		_, resolveErr = st.resolver.SaveFont(ctx, family)
	}
	entry, err := st.resolver.Resolve(ctx, family)
	spinner.Stop()
	if err == nil {
		err = resolveErr
	}

	if errors.Is(err, webfont.ErrNoFontList) {
		printWarning("No font list available for %s", family)
		printDetail("Set GOOGLE_FONT_KEY or place %s in %s", "google_fonts.json", st.cfg.FontsDir())
		return err
	}
	if err != nil {
		return fmt.Errorf("resolve %s: %w", family, err)
	}
	if entry.IsZero() {
		printWarning("%s is not in the font catalog", family)
		return nil
	}
	prog.done("Resolved " + family)

	if printCSS {
		fmt.Print(entry.Value)
		return nil
	}

	printSuccess("%s", family)
	printFile(st.cache.Path(family))
	printKeyValue("md5", entry.Hash)
	printEntryStats(strings.Count(entry.Value, "@font-face"), len(entry.Value), cached)
	if save {
		printDetail("Saved as active font settings")
	}
	printNewline()
	printNextStep("Preview the page head", appName+" head")
	return nil
}

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Recompute the font settings if WEB_FONT changed",
		Long: `Compare WEB_FONT with the stored font family and, when they differ,
resolve the family and store the new settings. This is what every admin page
load does.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStack(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if st.cfg.WebFont == "" {
				printInfo("WEB_FONT is not configured, nothing to check")
				return nil
			}

			ran, err := st.resolver.Check(ctx, st.cfg.WebFont)
			if errors.Is(err, webfont.ErrNoFontList) {
				printWarning("Saved %s without a font list", st.cfg.WebFont)
				return nil
			}
			if err != nil {
				return err
			}
			if ran {
				printSuccess("Font settings updated to %s", st.cfg.WebFont)
			} else {
				printInfo("Font settings are up to date (%s)", st.cfg.WebFont)
			}
			return nil
		},
	}
}

// refreshCommand creates the refresh command.
func (c *CLI) refreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh [family]",
		Short: "Trash the cached CSS and font settings",
		Long: `Remove the cache document of the family (default WEB_FONT) and clear
the stored font settings. With GOOGLE_FONT_KEY set the local font list is
removed too, so the next resolve fetches a fresh catalog.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStack(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			family, err := familyArg(st.cfg, args)
			if err != nil {
				return err
			}
			if err := st.resolver.Invalidate(ctx, family); err != nil {
				return err
			}
			printSuccess("%s", server.RefreshMessage)
			return nil
		},
	}
}

// settingsCommand creates the settings command.
func (c *CLI) settingsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the stored font settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStack(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			s, err := st.resolver.Snapshot(ctx)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}

			if s.IsZero() {
				printInfo("No font settings stored")
				printDetail("Scope: %s", st.settings.Prefix())
				return nil
			}
			printKeyValue("family", s.FontFamily)
			printKeyValue("md5", orDash(s.MD5))
			printKeyValue("file", s.FontFile)
			printKeyValue("scope", st.settings.Prefix())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
