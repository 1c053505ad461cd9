package fontcache

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/matzehuels/themefont/pkg/errors"
)

// FileCache implements Cache with one JSON file per family in a directory.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Dir returns the directory holding the cache documents.
func (c *FileCache) Dir() string { return c.dir }

// Get retrieves the entry for family.
func (c *FileCache) Get(ctx context.Context, family string) (Entry, bool, error) {
	if err := errors.ValidateFamily(family); err != nil {
		return Entry{}, false, err
	}

	data, err := os.ReadFile(c.Path(family))
	if os.IsNotExist(err) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}

	// Unparsable, empty or hash-mismatched documents are misses; the next
	// Set overwrites them.
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil || !entry.valid() {
		return Entry{}, false, nil
	}
	return entry, true, nil
}

// Set stores the entry for family as a single JSON object.
func (c *FileCache) Set(ctx context.Context, family string, e Entry) error {
	if err := errors.ValidateFamily(family); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		return err
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(c.Path(family), bytes.TrimRight(buf.Bytes(), "\n"), 0644)
}

// Delete removes the entry for family.
func (c *FileCache) Delete(ctx context.Context, family string) error {
	if err := errors.ValidateFamily(family); err != nil {
		return err
	}
	err := os.Remove(c.Path(family))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// Path returns the absolute path of the family's cache document.
func (c *FileCache) Path(family string) string {
	return filepath.Join(c.dir, Key(family))
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
