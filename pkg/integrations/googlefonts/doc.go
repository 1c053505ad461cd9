// Package googlefonts provides an HTTP client for the Google Fonts
// developer API.
//
// # Overview
//
// The API returns the full catalog of families in one document:
//
//	{"kind": "webfonts#webfontList", "items": [
//	    {"family": "Roboto", "variants": ["regular", "700"],
//	     "files": {"regular": "https://fonts.gstatic.com/...", "700": "..."}}
//	]}
//
// # Usage
//
//	client := googlefonts.NewClient(apiKey, fontsDir, logger)
//	cat, err := client.FetchCatalog(ctx)
//	if errors.Is(err, googlefonts.ErrNoFontList) {
//	    // neither remote nor local catalog available
//	}
//	roboto, ok := cat.Lookup("Roboto")
//
// # Local Fallback
//
// Every successful remote fetch is persisted verbatim to
// <fontsDir>/google_fonts.json. Without an API key, or when the request
// fails or the body carries an error marker, that file is used instead.
// There are no retries.
package googlefonts
