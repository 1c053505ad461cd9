package webfont

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	tferrors "github.com/matzehuels/themefont/pkg/errors"
	"github.com/matzehuels/themefont/pkg/fontcache"
	"github.com/matzehuels/themefont/pkg/integrations/googlefonts"
	"github.com/matzehuels/themefont/pkg/observability"
)

// ErrNoFontList is returned when no catalog is available to build a family.
var ErrNoFontList = googlefonts.ErrNoFontList

// Source supplies the font catalog and the font files it references.
type Source interface {
	Downloader

	// FetchCatalog returns the catalog, remote first with a local fallback.
	FetchCatalog(ctx context.Context) (*googlefonts.Catalog, error)

	// ClearLocal removes the locally persisted catalog document.
	ClearLocal() error
}

// Resolver computes, caches and serves the CSS embed for font families and
// keeps the active font settings in sync.
//
// Cached entries are served as-is: once a family is cached there is no
// freshness check against the catalog until [Resolver.Invalidate] is called.
// The Resolver holds no request state and performs no locking.
type Resolver struct {
	Source   Source
	Cache    fontcache.Cache
	Settings SettingsStore
	Builder  *Builder
	Logger   *log.Logger

	// ClearCatalog makes Invalidate also remove the local catalog document.
	// Only enable it when the Source can refetch the catalog remotely.
	ClearCatalog bool
}

// NewResolver creates a resolver.
// If cache is nil, a NullCache is used (every resolve recomputes).
// If logger is nil, log.Default() is used.
func NewResolver(src Source, c fontcache.Cache, settings SettingsStore, logger *log.Logger) *Resolver {
	if c == nil {
		c = fontcache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{
		Source:   src,
		Cache:    c,
		Settings: settings,
		Builder:  NewBuilder(src, logger),
		Logger:   logger,
	}
}

// Resolve returns the cache entry for family, building and persisting it on
// a cache miss.
//
// A family that is not in the catalog yields an empty entry and a nil error;
// nothing is written. When no catalog is available the empty entry is
// returned with [ErrNoFontList].
func (r *Resolver) Resolve(ctx context.Context, family string) (fontcache.Entry, error) {
	if err := tferrors.ValidateFamily(family); err != nil {
		return fontcache.Entry{}, err
	}

	entry, hit, err := r.Cache.Get(ctx, family)
	if err != nil {
		r.Logger.Warn("font cache unreadable, rebuilding", "family", family, "err", err)
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, family)
		r.Logger.Debug("font cache hit", "family", family, "md5", entry.Hash)
		return entry, nil
	}
	observability.Cache().OnCacheMiss(ctx, family)

	hooks := observability.Resolve()
	hooks.OnResolveStart(ctx, family)
	start := time.Now()

	entry, variants, err := r.build(ctx, family)
	hooks.OnResolveComplete(ctx, family, variants, time.Since(start), err)
	return entry, err
}

func (r *Resolver) build(ctx context.Context, family string) (fontcache.Entry, int, error) {
	cat, err := r.Source.FetchCatalog(ctx)
	if errors.Is(err, ErrNoFontList) {
		return fontcache.Entry{}, 0, tferrors.Wrap(tferrors.ErrCodeNoFontList, err, "resolve %s", family)
	}
	if err != nil {
		return fontcache.Entry{}, 0, fmt.Errorf("resolve %s: %w", family, err)
	}

	font, ok := cat.Lookup(family)
	if !ok {
		r.Logger.Info("font family not in font list", "family", family)
		return fontcache.Entry{}, 0, nil
	}

	value := r.Builder.Build(ctx, font.Family, font.Files)
	entry := fontcache.NewEntry(value)
	variants := countRules(value)

	if err := r.Cache.Set(ctx, family, entry); err != nil {
		return entry, variants, tferrors.Wrap(tferrors.ErrCodeStorage, err, "write font cache for %s", family)
	}
	observability.Cache().OnCacheSet(ctx, family, len(value))
	r.Logger.Info("built font cache", "family", family, "variants", variants, "md5", entry.Hash)
	return entry, variants, nil
}

// SaveFont resolves family and records it as the active font.
//
// The settings are written even when the catalog is unavailable or the
// family is unknown; md5 is then empty. The returned error still reports
// [ErrNoFontList] in that case.
func (r *Resolver) SaveFont(ctx context.Context, family string) (Settings, error) {
	entry, resolveErr := r.Resolve(ctx, family)
	if resolveErr != nil && !errors.Is(resolveErr, ErrNoFontList) {
		return Settings{}, resolveErr
	}

	s := Settings{
		FontFamily: family,
		MD5:        entry.Hash,
		FontFile:   fontcache.RelPath(family),
	}
	if err := r.Settings.Save(ctx, s); err != nil {
		return Settings{}, tferrors.Wrap(tferrors.ErrCodeStorage, err, "save font settings")
	}
	return s, resolveErr
}

// ShouldRecompute reports whether desired differs from the stored family.
func (r *Resolver) ShouldRecompute(ctx context.Context, desired string) (bool, error) {
	s, err := r.Settings.Load(ctx)
	if err != nil {
		return false, tferrors.Wrap(tferrors.ErrCodeStorage, err, "load font settings")
	}
	return desired != s.FontFamily, nil
}

// Check saves desired when it differs from the stored family. It reports
// whether a recompute happened. An empty desired family is ignored.
func (r *Resolver) Check(ctx context.Context, desired string) (bool, error) {
	if desired == "" {
		return false, nil
	}
	should, err := r.ShouldRecompute(ctx, desired)
	if err != nil || !should {
		return false, err
	}
	r.Logger.Info("web font changed, recomputing", "family", desired)
	_, err = r.SaveFont(ctx, desired)
	return true, err
}

// Invalidate trashes the cache entry for family and clears the settings.
// Missing files are not errors; only a settings failure is reported.
func (r *Resolver) Invalidate(ctx context.Context, family string) error {
	observability.Resolve().OnInvalidate(ctx, family)

	if err := r.Cache.Delete(ctx, family); err != nil {
		r.Logger.Warn("could not remove font cache", "family", family, "err", err)
	}
	if r.ClearCatalog {
		if err := r.Source.ClearLocal(); err != nil {
			r.Logger.Warn("could not remove font list", "err", err)
		}
	}
	if err := r.Settings.Clear(ctx); err != nil {
		return tferrors.Wrap(tferrors.ErrCodeStorage, err, "clear font settings")
	}
	r.Logger.Info("font settings cache trashed", "family", family)
	return nil
}

// Snapshot returns the stored settings for rendering.
func (r *Resolver) Snapshot(ctx context.Context) (Settings, error) {
	return r.Settings.Load(ctx)
}

func countRules(css string) int {
	return strings.Count(css, "@font-face")
}
