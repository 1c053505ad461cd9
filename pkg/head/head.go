// Package head renders the theme's page-head fragments: the web-font
// settings variable, the font loader script, the font-family style rule and
// the styleguide asset tags.
//
// Fragments are registered on a [Registry] with a priority and rendered in
// ascending priority, ties in registration order:
//
//	reg := head.New(head.Options{WebFont: "Roboto", Settings: settings, ...})
//	reg.Render(ctx, w)
package head

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
)

// Priorities of the built-in fragments.
const (
	PriorityFont         = 5
	PriorityStyleguide   = 10
	PriorityFontFamilies = 200
)

// Func writes one head fragment.
type Func func(ctx context.Context, w io.Writer) error

type entry struct {
	priority int
	name     string
	fn       Func
}

// Registry is an ordered set of head fragments. It is not safe for
// concurrent registration; rendering is read-only.
type Registry struct {
	entries []entry
}

// Add registers fn under name at priority.
func (r *Registry) Add(priority int, name string, fn Func) {
	r.entries = append(r.entries, entry{
		priority: priority,
		name:     name,
		fn:       fn,
	})
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].priority < r.entries[j].priority
	})
}

// Names returns the registered fragment names in render order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

// Len returns the number of registered fragments.
func (r *Registry) Len() int { return len(r.entries) }

// Render writes every fragment in order and stops at the first error.
func (r *Registry) Render(ctx context.Context, w io.Writer) error {
	for _, e := range r.entries {
		if err := e.fn(ctx, w); err != nil {
			return fmt.Errorf("render %s: %w", e.name, err)
		}
	}
	return nil
}

type requestKey struct{}

// WithRequest attaches the page request so fragments can honor per-request
// switches such as DEV_MODE.
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, requestKey{}, r)
}

// RequestFromContext returns the request stored by [WithRequest], or nil.
func RequestFromContext(ctx context.Context) *http.Request {
	r, _ := ctx.Value(requestKey{}).(*http.Request)
	return r
}
