// Package styleguide resolves asset URLs of the hosted styleguide (stylesheet,
// script and arbitrary files) the theme links from its page head.
//
// # Base URI
//
// The base is chosen in this order:
//
//  1. Dev mode: [DevURI]
//  2. Config.URI when set, otherwise [DefaultURI]
//
// For the non-dev case the result passes through the URI filter, is
// right-trimmed of "/", and gets "/<Version>" appended when a version is set.
//
// # Usage
//
//	sg := styleguide.New(styleguide.Config{ColorScheme: "purple"})
//	sg.StylePath(false) // //helsingborg-stad.github.io/styleguide-web/dist//css/hbg-prime-purple.min.css
//	sg.ForRequest(r).ScriptPath()
package styleguide

import (
	"net/http"
	"strings"
)

// Known styleguide locations.
const (
	DefaultURI = "//helsingborg-stad.github.io/styleguide-web/dist"
	DevURI     = "//hbgprime.dev/dist"
)

// DevModeParam is the query parameter that enables dev mode for one request
// when set to "true".
const DevModeParam = "DEV_MODE"

// Config holds the deployment-level styleguide settings.
type Config struct {
	DevMode     bool   // always use the dev URI and unminified assets
	URI         string // base URI override
	Version     string // appended as a path segment when set
	ColorScheme string // theme key used in the stylesheet name
}

// Filter rewrites a value before it is used. A nil filter is the identity.
type Filter func(string) string

// Resolver builds styleguide asset URLs.
type Resolver struct {
	cfg Config

	// URIFilter rewrites the base URI before trimming and versioning.
	URIFilter Filter

	// ThemeKeyFilter rewrites the color scheme before it names the stylesheet.
	ThemeKeyFilter Filter
}

// New creates a resolver for cfg.
func New(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// ForRequest returns a copy of r with dev mode enabled when the request
// carries DEV_MODE=true. Filters are shared with r.
func (r *Resolver) ForRequest(req *http.Request) *Resolver {
	if req == nil || req.URL.Query().Get(DevModeParam) != "true" {
		return r
	}
	cp := *r
	cp.cfg.DevMode = true
	return &cp
}

// DevMode reports whether dev assets are served.
func (r *Resolver) DevMode() bool { return r.cfg.DevMode }

// BaseURI returns the styleguide root without a trailing slash.
func (r *Resolver) BaseURI() string {
	if r.cfg.DevMode {
		return DevURI
	}

	uri := DefaultURI
	if r.cfg.URI != "" {
		uri = r.cfg.URI
	}
	uri = strings.TrimRight(apply(r.URIFilter, uri), "/")

	if r.cfg.Version != "" {
		uri += "/" + r.cfg.Version
	}
	return uri
}

// Path joins p onto the base URI with a single "/". p is used verbatim.
func (r *Resolver) Path(p string) string {
	return r.BaseURI() + "/" + p
}

// StylePath returns the theme stylesheet URL; isBem selects the BEM build.
func (r *Resolver) StylePath(isBem bool) string {
	dir := "/css"
	if isBem {
		dir = "/css-bem"
	}
	theme := apply(r.ThemeKeyFilter, r.cfg.ColorScheme)
	return r.Path(dir + "/hbg-prime-" + theme + "." + r.ext() + ".css")
}

// ScriptPath returns the styleguide script URL.
func (r *Resolver) ScriptPath() string {
	return r.Path("js/hbg-prime." + r.ext() + ".js")
}

func (r *Resolver) ext() string {
	if r.cfg.DevMode {
		return "dev"
	}
	return "min"
}

func apply(f Filter, v string) string {
	if f == nil {
		return v
	}
	return f(v)
}
