package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/themefont/pkg/styleguide"
)

// styleguideCommand creates the styleguide command.
func (c *CLI) styleguideCommand() *cobra.Command {
	var dev bool

	cmd := &cobra.Command{
		Use:   "styleguide",
		Short: "Print styleguide asset URLs",
	}
	cmd.PersistentFlags().BoolVar(&dev, "dev", false, "use the dev styleguide (same as DEV_MODE=true)")

	resolver := func() (*styleguide.Resolver, error) {
		cfg, err := c.loadConfig()
		if err != nil {
			return nil, err
		}
		sc := cfg.StyleguideConfig()
		sc.DevMode = sc.DevMode || dev
		return styleguide.New(sc), nil
	}

	var bem bool
	style := &cobra.Command{
		Use:   "style",
		Short: "Print the theme stylesheet URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sg, err := resolver()
			if err != nil {
				return err
			}
			fmt.Println(StyleLink.Render(sg.StylePath(bem)))
			return nil
		},
	}
	style.Flags().BoolVar(&bem, "bem", false, "use the BEM stylesheet")

	script := &cobra.Command{
		Use:   "script",
		Short: "Print the styleguide script URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sg, err := resolver()
			if err != nil {
				return err
			}
			fmt.Println(StyleLink.Render(sg.ScriptPath()))
			return nil
		},
	}

	path := &cobra.Command{
		Use:   "path <file>",
		Short: "Print the URL of a file in the styleguide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sg, err := resolver()
			if err != nil {
				return err
			}
			fmt.Println(StyleLink.Render(sg.Path(args[0])))
			return nil
		},
	}

	cmd.AddCommand(style, script, path)
	return cmd
}
