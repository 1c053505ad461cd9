package googlefonts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/themefont/pkg/integrations"
)

// DefaultBaseURL is the Google Fonts developer API list endpoint.
const DefaultBaseURL = "https://www.googleapis.com/webfonts/v1/webfonts"

// ListFile is the file name of the locally persisted catalog document.
const ListFile = "google_fonts.json"

// ErrNoFontList is returned when neither the remote API nor the local
// catalog document can supply a font list.
var ErrNoFontList = errors.New("no font list available")

// errorMarker in a response body means the API answered with an error
// document (bad key, quota) instead of a catalog.
var errorMarker = []byte("error")

// Catalog is the list of font families returned by the API.
type Catalog struct {
	Kind  string   `json:"kind"`
	Items []Family `json:"items"`
}

// Family is one catalog entry. Files maps style keys ("regular", "700italic")
// to downloadable font file URLs.
type Family struct {
	Family       string            `json:"family"`
	Category     string            `json:"category,omitempty"`
	Variants     []string          `json:"variants,omitempty"`
	Version      string            `json:"version,omitempty"`
	LastModified string            `json:"lastModified,omitempty"`
	Files        map[string]string `json:"files"`
}

// Lookup returns the first entry whose family name matches exactly.
func (c *Catalog) Lookup(family string) (Family, bool) {
	if c == nil {
		return Family{}, false
	}
	for _, f := range c.Items {
		if f.Family == family {
			return f, true
		}
	}
	return Family{}, false
}

// Client fetches the Google Fonts catalog and font files.
//
// The catalog is fetched remotely only when an API key is configured; a
// successful response replaces the local copy under the fonts directory,
// which is used whenever the remote fetch is not possible.
type Client struct {
	*integrations.Client
	baseURL  string
	apiKey   string
	fontsDir string
	logger   *log.Logger
}

// NewClient creates a Google Fonts client.
//
// Parameters:
//   - apiKey: developer API key; empty disables remote catalog fetches
//   - fontsDir: directory holding the local catalog document
//   - logger: may be nil, in which case log.Default() is used
func NewClient(apiKey, fontsDir string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	headers := map[string]string{
		"User-Agent": integrations.UserAgent,
	}
	return &Client{
		Client:   integrations.NewClient(headers),
		baseURL:  DefaultBaseURL,
		apiKey:   apiKey,
		fontsDir: fontsDir,
		logger:   logger,
	}
}

// SetBaseURL points the client at a different list endpoint.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// ListPath returns the path of the local catalog document.
func (c *Client) ListPath() string {
	return filepath.Join(c.fontsDir, ListFile)
}

// FetchCatalog returns the font catalog.
//
// With an API key, a single request is made to the list endpoint. A
// non-empty 200 response that does not contain an error marker and parses
// as a catalog is written verbatim to [Client.ListPath] and returned; it is
// returned even when the local copy cannot be written. Every other outcome
// falls back to the local document.
//
// Returns [ErrNoFontList] if the remote catalog is unavailable and no
// readable local document exists.
func (c *Client) FetchCatalog(ctx context.Context) (*Catalog, error) {
	if c.apiKey != "" {
		cat, err := c.fetchRemote(ctx)
		if err == nil {
			return cat, nil
		}
		c.logger.Warn("remote font list unavailable, using local copy", "err", err)
	} else {
		c.logger.Debug("no api key configured, using local font list")
	}
	return c.loadLocal()
}

func (c *Client) fetchRemote(ctx context.Context) (*Catalog, error) {
	url := fmt.Sprintf("%s?key=%s", c.baseURL, integrations.URLEncode(c.apiKey))
	body, err := c.GetBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty font list", integrations.ErrNetwork)
	}
	if bytes.Contains(body, errorMarker) {
		return nil, fmt.Errorf("%w: font list response reports an error", integrations.ErrNetwork)
	}

	cat, err := parseCatalog(body)
	if err != nil {
		return nil, err
	}

	if err := c.persist(body); err != nil {
		c.logger.Warn("could not store font list locally", "path", c.ListPath(), "err", err)
		return cat, nil
	}
	c.logger.Debug("refreshed font list", "families", len(cat.Items), "path", c.ListPath())
	return cat, nil
}

func (c *Client) persist(body []byte) error {
	if err := os.MkdirAll(c.fontsDir, 0755); err != nil {
		return fmt.Errorf("create fonts dir: %w", err)
	}
	if err := os.WriteFile(c.ListPath(), body, 0644); err != nil {
		return fmt.Errorf("write font list: %w", err)
	}
	return nil
}

func (c *Client) loadLocal() (*Catalog, error) {
	data, err := os.ReadFile(c.ListPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoFontList
		}
		return nil, fmt.Errorf("%w: %v", ErrNoFontList, err)
	}
	cat, err := parseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFontList, err)
	}
	return cat, nil
}

// ClearLocal removes the local catalog document. A missing document is not
// an error.
func (c *Client) ClearLocal() error {
	err := os.Remove(c.ListPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Download fetches one font file. It makes a single attempt.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	return c.GetBytes(ctx, url)
}

func parseCatalog(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse font list: %w", err)
	}
	return &cat, nil
}
