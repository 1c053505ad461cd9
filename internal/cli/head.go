package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// headCommand creates the head command.
func (c *CLI) headCommand() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "head",
		Short: "Print the page head fragments",
		Long: `Print the HTML fragments the theme emits in the page head: the webFont
settings variable and loader script (with WEB_FONT), the styleguide assets and
the body font-family rule (with THEME_FONTS).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStack(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			reg := st.headRegistry()
			if list {
				printInfo("Fragments in render order: %s", strings.Join(reg.Names(), ", "))
				return nil
			}
			if err := reg.Render(ctx, os.Stdout); err != nil {
				return err
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list the registered fragments instead of rendering")

	return cmd
}
