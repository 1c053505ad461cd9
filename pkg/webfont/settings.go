package webfont

import "context"

// Settings is the persisted record of the active web font, exposed to the
// page-render layer.
type Settings struct {
	FontFamily string `json:"fontFamily"`
	MD5        string `json:"md5"`
	FontFile   string `json:"fontFile"`
}

// IsZero reports whether no font has been saved.
func (s Settings) IsZero() bool { return s == Settings{} }

// SettingsStore persists [Settings]. Single-site and multi-site deployments
// use different implementations with the same shape.
type SettingsStore interface {
	// Load returns the stored settings; missing fields are empty strings.
	Load(ctx context.Context) (Settings, error)

	// Save overwrites all three fields.
	Save(ctx context.Context, s Settings) error

	// Clear removes all three fields.
	Clear(ctx context.Context) error
}
