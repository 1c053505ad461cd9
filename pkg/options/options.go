// Package options stores the theme's font settings in a key-value options
// backend.
//
// # Backends
//
// A [Backend] holds raw named string options:
//   - [MemoryBackend]: in-process map for development/testing
//   - [SQLiteBackend]: an options table in a local SQLite file (default)
//   - [RedisBackend]: shared Redis instance for multi-instance deployments
//   - [MongoBackend]: a MongoDB collection for multi-instance deployments
//
// # Scopes
//
// The three font settings are stored as theme_font_family, theme_font_md5
// and theme_font_file. Where they live depends on the deployment mode:
//
//	settings := options.NewSiteSettings(backend, "1")  // single site: "site:1:theme_font_*"
//	settings := options.NewNetworkSettings(backend)    // multisite:   "network:theme_font_*"
//
// Both implement [webfont.SettingsStore].
package options

import (
	"context"
	"fmt"
	"strings"

	tferrors "github.com/matzehuels/themefont/pkg/errors"
)

// Option names of the font settings.
const (
	OptionFontFamily = "theme_font_family"
	OptionFontMD5    = "theme_font_md5"
	OptionFontFile   = "theme_font_file"
)

// Driver names accepted by [Open].
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
)

// Drivers lists the supported backend drivers.
var Drivers = []string{DriverSQLite, DriverMemory, DriverRedis, DriverMongo}

// Backend stores named string options.
type Backend interface {
	// Get returns the option value and whether it exists.
	Get(ctx context.Context, name string) (string, bool, error)

	// Set creates or overwrites an option.
	Set(ctx context.Context, name, value string) error

	// Delete removes an option. Deleting a missing option is not an error.
	Delete(ctx context.Context, name string) error

	// Close releases resources.
	Close() error
}

// Open creates a backend for driver.
//
// The dsn is interpreted per driver: a file path for sqlite, a redis:// URL
// for redis, a mongodb:// URI for mongo. It is ignored for memory.
func Open(ctx context.Context, driver, dsn string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverMemory:
		return NewMemoryBackend(), nil
	case DriverSQLite, "":
		return OpenSQLite(dsn)
	case DriverRedis:
		return OpenRedis(ctx, dsn)
	case DriverMongo:
		return OpenMongo(ctx, dsn)
	default:
		return nil, tferrors.New(tferrors.ErrCodeInvalidConfig, "unknown settings driver %q (want one of %s)",
			driver, strings.Join(Drivers, ", "))
	}
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("option name is required")
	}
	return nil
}
