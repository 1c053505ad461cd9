package options

import (
	"context"
	"errors"

	"github.com/matzehuels/themefont/pkg/webfont"
)

// ScopedSettings maps [webfont.Settings] onto three option names under a
// key prefix, giving per-site or network-wide isolation in a shared backend.
//
// Example usage:
//
//	// One site of a single-site install
//	settings := NewSiteSettings(backend, "1")
//
//	// Network-wide settings of a multisite install
//	settings := NewNetworkSettings(backend)
type ScopedSettings struct {
	backend Backend
	prefix  string
}

// NewSiteSettings scopes settings to one site: "site:<id>:theme_font_*".
func NewSiteSettings(backend Backend, siteID string) *ScopedSettings {
	if siteID == "" {
		siteID = "1"
	}
	return &ScopedSettings{backend: backend, prefix: "site:" + siteID + ":"}
}

// NewNetworkSettings scopes settings to the whole network: "network:theme_font_*".
func NewNetworkSettings(backend Backend) *ScopedSettings {
	return &ScopedSettings{backend: backend, prefix: "network:"}
}

// Prefix returns the key prefix applied to every option name.
func (s *ScopedSettings) Prefix() string { return s.prefix }

// Load reads the three options. Missing options load as empty strings.
func (s *ScopedSettings) Load(ctx context.Context) (webfont.Settings, error) {
	var out webfont.Settings
	for _, f := range s.fields(&out) {
		v, _, err := s.backend.Get(ctx, s.prefix+f.name)
		if err != nil {
			return webfont.Settings{}, err
		}
		*f.dst = v
	}
	return out, nil
}

// Save writes all three options.
func (s *ScopedSettings) Save(ctx context.Context, settings webfont.Settings) error {
	for _, f := range s.fields(&settings) {
		if err := s.backend.Set(ctx, s.prefix+f.name, *f.dst); err != nil {
			return err
		}
	}
	return nil
}

// Clear deletes all three options, continuing past failures.
func (s *ScopedSettings) Clear(ctx context.Context) error {
	var errs []error
	for _, name := range []string{OptionFontFamily, OptionFontMD5, OptionFontFile} {
		if err := s.backend.Delete(ctx, s.prefix+name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type settingsField struct {
	name string
	dst  *string
}

func (s *ScopedSettings) fields(settings *webfont.Settings) []settingsField {
	return []settingsField{
		{OptionFontFamily, &settings.FontFamily},
		{OptionFontMD5, &settings.MD5},
		{OptionFontFile, &settings.FontFile},
	}
}

var _ webfont.SettingsStore = (*ScopedSettings)(nil)
