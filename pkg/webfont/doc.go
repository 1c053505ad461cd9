// Package webfont builds and caches embedded web font CSS for a theme.
//
// # Overview
//
// A [Resolver] turns a font family name into a [fontcache.Entry]: the
// concatenated @font-face rules for the family's allowed styles, each with
// the font file inlined as a base64 data URI, plus the MD5 of that CSS.
//
//	src := googlefonts.NewClient(apiKey, fontsDir, logger)
//	cache, _ := fontcache.NewFileCache(fontsDir)
//	r := webfont.NewResolver(src, cache, settingsStore, logger)
//
//	entry, err := r.Resolve(ctx, "Roboto")
//
// # Lifecycle
//
//   - [Resolver.Check] runs on administrative load and recomputes only when
//     the configured family differs from the stored settings.
//   - [Resolver.SaveFont] resolves and records {fontFamily, md5, fontFile}.
//   - [Resolver.Invalidate] is the manual trash action; the next Check
//     rebuilds from the catalog.
//
// # Failure Policy
//
// The package fails open. Unknown families produce an empty entry, failed
// font downloads are skipped, malformed cache documents count as misses and
// a missing remote catalog falls back to the local copy. Only the total
// absence of a catalog is reported, as [ErrNoFontList].
package webfont
