package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/themefont/pkg/buildinfo"
)

const httpTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when a remote resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-200 responses).
	ErrNetwork = errors.New("network error")
)

// UserAgent is sent with every request to remote font sources.
var UserAgent = buildinfo.UserAgent()

// NewHTTPClient creates an HTTP client with a standard timeout for font requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NormalizeFamily trims surrounding whitespace and collapses inner runs of
// spaces, so "  Open   Sans " and "Open Sans" address the same family.
// Case is preserved: catalog lookups are exact.
func NormalizeFamily(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// URLEncode percent-encodes a string for use in URLs.
// This is a convenience wrapper around [url.QueryEscape].
func URLEncode(s string) string { return url.QueryEscape(s) }
