package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/themefont/pkg/integrations/googlefonts"
	"github.com/matzehuels/themefont/pkg/webfont"
)

// catalogCommand creates the catalog command.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the Google Fonts catalog",
	}

	cmd.AddCommand(c.catalogListCommand())
	cmd.AddCommand(c.catalogPickCommand())

	return cmd
}

// catalogListCommand creates the "catalog list" subcommand.
func (c *CLI) catalogListCommand() *cobra.Command {
	var (
		category string
		match    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List font families in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			families, err := c.fetchFamilies(cmd.Context(), category, match)
			if err != nil {
				return err
			}
			for _, f := range families {
				fmt.Printf("%-32s %s\n", StyleValue.Render(f.Family), StyleDim.Render(f.Category))
			}
			printNewline()
			printDetail("%d families", len(families))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only families in this category (serif, sans-serif, display, ...)")
	cmd.Flags().StringVar(&match, "match", "", "only families whose name contains this text")

	return cmd
}

// catalogPickCommand creates the "catalog pick" subcommand.
func (c *CLI) catalogPickCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a family interactively and store it as the active font",
		Long: `Pick a family from the catalog in an interactive list. The chosen family
is resolved and stored as the active font settings.

Admin loads reset the settings to WEB_FONT whenever they differ, so update
WEB_FONT to keep the choice.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStack(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			cat, err := st.catalog.FetchCatalog(ctx)
			if err != nil {
				return err
			}
			families := filterFamilies(cat.Items, category, "")
			if len(families) == 0 {
				return fmt.Errorf("no font families found")
			}

			m := NewFamilyListModel(families, st.cfg.WebFont)
			finalModel, err := tea.NewProgram(m).Run()
			if err != nil {
				return err
			}
			fm, ok := finalModel.(FamilyListModel)
			if !ok || fm.Selected == nil {
				printDetail("No selection made")
				return nil
			}

			family := fm.Selected.Family
			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Resolving %s...", family))
			spinner.Start()
			s, err := st.resolver.SaveFont(ctx, family)
			if err != nil && !errors.Is(err, webfont.ErrNoFontList) {
				spinner.StopWithError("Resolve failed")
				return err
			}
			spinner.StopWithSuccess("Active font: " + family)
			printKeyValue("md5", orDash(s.MD5))
			printKeyValue("file", s.FontFile)
			if family != st.cfg.WebFont {
				printNewline()
				printNextStep("Keep it across admin loads", "export WEB_FONT=\""+family+"\"")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only families in this category")

	return cmd
}

func (c *CLI) fetchFamilies(ctx context.Context, category, match string) ([]googlefonts.Family, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	client := googlefonts.NewClient(cfg.GoogleFontKey, cfg.FontsDir(), c.Logger)
	cat, err := client.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return filterFamilies(cat.Items, category, match), nil
}

// filterFamilies keeps families in category (if set) whose name contains
// match (case-insensitive, if set), sorted by name.
func filterFamilies(items []googlefonts.Family, category, match string) []googlefonts.Family {
	match = strings.ToLower(match)
	var out []googlefonts.Family
	for _, f := range items {
		if category != "" && !strings.EqualFold(f.Category, category) {
			continue
		}
		if match != "" && !strings.Contains(strings.ToLower(f.Family), match) {
			continue
		}
		out = append(out, f)
	}
	slices.SortStableFunc(out, func(a, b googlefonts.Family) int {
		return strings.Compare(a.Family, b.Family)
	})
	return out
}
