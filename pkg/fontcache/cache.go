// Package fontcache persists built @font-face blocks, one JSON document per
// font family.
//
// Each family is stored under the fonts directory as
//
//	<fonts dir>/<lower_case_family>.json  ->  {"md5": "<hash>", "value": "<css>"}
//
// Entries never expire. They are created the first time a family is resolved,
// overwritten on every recompute and removed only by an explicit Delete.
// Writes are not atomic and not locked: concurrent recomputes of the same
// family are last-write-wins.
package fontcache

import (
	"context"
	"path"
	"strings"
)

// RelDir is the directory of cache documents relative to the theme root,
// as recorded in the fontFile setting and served by the HTTP surface.
const RelDir = "/assets/source/fonts/"

// Entry is the cached result for one font family.
type Entry struct {
	Hash  string `json:"md5"`   // hex MD5 of Value
	Value string `json:"value"` // concatenated @font-face rules
}

// IsZero reports whether e carries no CSS.
func (e Entry) IsZero() bool { return e.Hash == "" && e.Value == "" }

// valid reports whether e carries a hash matching its value.
func (e Entry) valid() bool { return e.Hash != "" && e.Hash == Hash(e.Value) }

// Cache stores entries keyed by font family.
type Cache interface {
	// Get returns the entry for family. A missing or unreadable document is
	// reported as a miss, not an error.
	Get(ctx context.Context, family string) (Entry, bool, error)

	// Set overwrites the entry for family.
	Set(ctx context.Context, family string, e Entry) error

	// Delete removes the entry for family. Deleting a missing entry is not an error.
	Delete(ctx context.Context, family string) error

	// Close releases resources.
	Close() error
}

// Key converts a family name into its cache file name: lower case, spaces
// replaced by underscores, ".json" suffix.
func Key(family string) string {
	return strings.ReplaceAll(strings.ToLower(family), " ", "_") + ".json"
}

// RelPath returns the theme-relative path of the family's cache document.
func RelPath(family string) string {
	return path.Join(RelDir, Key(family))
}
