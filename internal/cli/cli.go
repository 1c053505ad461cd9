// Package cli implements the themefont command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/themefont/pkg/buildinfo"
	"github.com/matzehuels/themefont/pkg/config"
	tferrors "github.com/matzehuels/themefont/pkg/errors"
	"github.com/matzehuels/themefont/pkg/fontcache"
	"github.com/matzehuels/themefont/pkg/head"
	"github.com/matzehuels/themefont/pkg/integrations"
	"github.com/matzehuels/themefont/pkg/integrations/googlefonts"
	"github.com/matzehuels/themefont/pkg/options"
	"github.com/matzehuels/themefont/pkg/styleguide"
	"github.com/matzehuels/themefont/pkg/webfont"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "themefont"

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

	// ConfigPath is the --config flag; empty uses the default location.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "themefont embeds Google Fonts into a theme as cached @font-face CSS",
		Long: `themefont resolves a Google Fonts family into base64 @font-face rules,
caches them as a JSON document under the theme's assets, and keeps the theme's
font settings (family, md5, cache file) in sync.

Configuration is read from $XDG_CONFIG_HOME/themefont/config.toml (or --config)
and overridden by WEB_FONT, THEME_FONTS, GOOGLE_FONT_KEY and friends.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: $XDG_CONFIG_HOME/themefont/config.toml)")

	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.refreshCommand())
	root.AddCommand(c.settingsCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.styleguideCommand())
	root.AddCommand(c.headCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// =============================================================================
// Stack Factory
// =============================================================================

// stack is the wired set of components a command works with.
type stack struct {
	cfg      config.Config
	backend  options.Backend
	settings *options.ScopedSettings
	catalog  *googlefonts.Client
	cache    *fontcache.FileCache
	resolver *webfont.Resolver
}

func (s *stack) Close() error {
	return s.backend.Close()
}

// loadConfig reads and validates the configuration.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openStack loads the configuration and wires the settings backend, catalog
// client, cache and resolver.
func (c *CLI) openStack(ctx context.Context) (*stack, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return c.newStack(ctx, cfg)
}

func (c *CLI) newStack(ctx context.Context, cfg config.Config) (*stack, error) {
	backend, err := options.Open(ctx, cfg.Settings.Driver, cfg.SettingsDSN())
	if err != nil {
		return nil, err
	}

	settings := options.NewSiteSettings(backend, cfg.SiteID)
	if cfg.Multisite {
		settings = options.NewNetworkSettings(backend)
	}

	fontsDir := cfg.FontsDir()
	cache, err := fontcache.NewFileCache(fontsDir)
	if err != nil {
		backend.Close()
		return nil, err
	}

	catalog := googlefonts.NewClient(cfg.GoogleFontKey, fontsDir, c.Logger)
	resolver := webfont.NewResolver(catalog, cache, settings, c.Logger)
	resolver.ClearCatalog = cfg.GoogleFontKey != ""

	c.Logger.Debug("settings backend ready", "driver", cfg.Settings.Driver, "scope", settings.Prefix())
	return &stack{
		cfg:      cfg,
		backend:  backend,
		settings: settings,
		catalog:  catalog,
		cache:    cache,
		resolver: resolver,
	}, nil
}

// headRegistry builds the page head fragments for the stack.
func (s *stack) headRegistry() *head.Registry {
	return head.New(head.Options{
		WebFont:     s.cfg.WebFont,
		ThemeFonts:  s.cfg.ThemeFonts,
		Settings:    s.settings,
		TemplateURI: s.cfg.TemplateURI,
		ThemeDir:    s.cfg.ThemeDir,
		Styleguide:  styleguide.New(s.cfg.StyleguideConfig()),
	})
}

// familyArg returns the family from args, falling back to the configured web font.
func familyArg(cfg config.Config, args []string) (string, error) {
	if len(args) > 0 {
		if family := integrations.NormalizeFamily(args[0]); family != "" {
			return family, nil
		}
	}
	if family := integrations.NormalizeFamily(cfg.WebFont); family != "" {
		return family, nil
	}
	return "", errNoWebFont
}

var errNoWebFont = tferrors.New(tferrors.ErrCodeInvalidInput, "no font family given and WEB_FONT is not configured")
