package fontcache

import "context"

// NullCache is a no-op cache that never stores anything.
// Every Get is a miss, so each resolve rebuilds the CSS from the catalog.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, family string) (Entry, bool, error) {
	return Entry{}, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, family string, e Entry) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, family string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
