// Package integrations provides HTTP clients for remote font sources.
//
// # Overview
//
// The [Client] type holds the shared HTTP plumbing: default headers, a
// bounded transport timeout, status classification and observability
// hooks. Source-specific clients embed it:
//
//   - [googlefonts]: Google Fonts developer API catalog and font files
//
// # Error Handling
//
// Every request is a single attempt. Failures are reported as
// [ErrNetwork] (transport errors and unexpected status codes) or
// [ErrNotFound] (404) and it is up to the caller to fall back, for example
// to a locally persisted catalog.
//
// [googlefonts]: github.com/matzehuels/themefont/pkg/integrations/googlefonts
package integrations
