package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/themefont/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the page, admin endpoint and font cache over HTTP",
		Long: `Serve the theme's HTTP surface:

  GET /                       page with the rendered head (DEV_MODE=true supported)
  GET /wp-admin               check WEB_FONT (or ?refreshWebFont to trash the cache)
  GET /assets/source/fonts/*  cache documents referenced by webFont.fontFile`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStack(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			addr := st.cfg.Server.Listen
			if listen != "" {
				addr = listen
			}
			srv, err := server.New(server.Config{
				Addr:     addr,
				WebFont:  st.cfg.WebFont,
				Resolver: st.resolver,
				Head:     st.headRegistry(),
				FontsDir: st.cfg.FontsDir(),
				Logger:   c.Logger,
			})
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from config, :8080)")

	return cmd
}
