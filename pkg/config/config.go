// Package config loads themefont configuration from a TOML file with
// environment overrides.
//
// Precedence, lowest first: [Default], the TOML file, environment variables.
// Environment variables use the theme's constant names (WEB_FONT,
// THEME_FONTS, GOOGLE_FONT_KEY, DEV_MODE, ...) so an existing deployment's
// settings carry over unchanged.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	tferrors "github.com/matzehuels/themefont/pkg/errors"
	"github.com/matzehuels/themefont/pkg/fontcache"
	"github.com/matzehuels/themefont/pkg/options"
	"github.com/matzehuels/themefont/pkg/styleguide"
)

// Config is the full themefont configuration.
type Config struct {
	// WebFont is the Google Fonts family to embed. Empty disables web fonts.
	WebFont string `toml:"web_font" env:"WEB_FONT"`

	// ThemeFonts is the CSS font stack for body text, e.g. "Roboto,Helvetica,Arial".
	ThemeFonts string `toml:"theme_fonts" env:"THEME_FONTS"`

	// GoogleFontKey enables remote catalog refreshes.
	GoogleFontKey string `toml:"google_font_key" env:"GOOGLE_FONT_KEY"`

	// ThemeDir is the theme root holding assets/.
	ThemeDir string `toml:"theme_dir" env:"MUNICIPIO_PATH"`

	// TemplateURI is the public URL of ThemeDir, prefixed to fontFile.
	TemplateURI string `toml:"template_uri" env:"THEMEFONT_TEMPLATE_URI"`

	Multisite bool   `toml:"multisite" env:"THEMEFONT_MULTISITE"`
	SiteID    string `toml:"site_id" env:"THEMEFONT_SITE_ID"`

	Styleguide Styleguide `toml:"styleguide"`
	Settings   Settings   `toml:"settings"`
	Server     Server     `toml:"server"`
}

// Styleguide configures asset URLs.
type Styleguide struct {
	DevMode     bool   `toml:"dev_mode" env:"DEV_MODE"`
	URI         string `toml:"uri" env:"MUNICIPIO_STYLEGUIDE_URI"`
	Version     string `toml:"version" env:"STYLEGUIDE_VERSION"`
	ColorScheme string `toml:"color_scheme" env:"THEMEFONT_COLOR_SCHEME"`
}

// Settings selects the options backend.
type Settings struct {
	Driver string `toml:"driver" env:"THEMEFONT_SETTINGS_DRIVER"`
	DSN    string `toml:"dsn" env:"THEMEFONT_SETTINGS_DSN"`
}

// Server configures `themefont serve`.
type Server struct {
	Listen string `toml:"listen" env:"THEMEFONT_LISTEN"`
}

// DefaultSQLiteFile is the settings database name under ThemeDir.
const DefaultSQLiteFile = "themefont.db"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ThemeDir: ".",
		SiteID:   "1",
		Settings: Settings{Driver: options.DriverSQLite},
		Server:   Server{Listen: ":8080"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/themefont/config.toml (or the
// platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "themefont", "config.toml"), nil
}

// Load reads path, or the default path when empty, and applies environment
// overrides. A missing default file is not an error; a missing explicit
// file is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
			return Config{}, tferrors.Wrap(tferrors.ErrCodeInvalidConfig, err, "read config %s", path)
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return Config{}, tferrors.Wrap(tferrors.ErrCodeInvalidConfig, err, "read environment")
	}
	return cfg, nil
}

// ParseEnv overlays environment variables onto target.
func ParseEnv(target *Config) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ThemeDir) == "" {
		return tferrors.New(tferrors.ErrCodeInvalidConfig, "theme_dir (MUNICIPIO_PATH) is required")
	}
	driver := strings.ToLower(strings.TrimSpace(c.Settings.Driver))
	if driver != "" && !slices.Contains(options.Drivers, driver) {
		return tferrors.New(tferrors.ErrCodeInvalidConfig, "unknown settings driver %q (want one of %s)",
			c.Settings.Driver, strings.Join(options.Drivers, ", "))
	}
	if (driver == options.DriverRedis || driver == options.DriverMongo) && c.Settings.DSN == "" {
		return tferrors.New(tferrors.ErrCodeInvalidConfig, "settings driver %s requires a dsn", driver)
	}
	if c.WebFont != "" {
		if err := tferrors.ValidateFamily(c.WebFont); err != nil {
			return err
		}
	}
	return nil
}

// FontsDir returns the directory holding the catalog and cache documents.
func (c Config) FontsDir() string {
	return filepath.Join(c.ThemeDir, filepath.FromSlash(strings.Trim(fontcache.RelDir, "/")))
}

// SettingsDSN returns the configured DSN, defaulting sqlite to a file in ThemeDir.
func (c Config) SettingsDSN() string {
	if c.Settings.DSN != "" {
		return c.Settings.DSN
	}
	driver := strings.ToLower(c.Settings.Driver)
	if driver == "" || driver == options.DriverSQLite {
		return filepath.Join(c.ThemeDir, DefaultSQLiteFile)
	}
	return ""
}

// StyleguideConfig converts the styleguide section for [styleguide.New].
func (c Config) StyleguideConfig() styleguide.Config {
	return styleguide.Config{
		DevMode:     c.Styleguide.DevMode,
		URI:         c.Styleguide.URI,
		Version:     c.Styleguide.Version,
		ColorScheme: c.Styleguide.ColorScheme,
	}
}
