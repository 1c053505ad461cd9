package webfont

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// fontMIME is the media type of embedded font data URIs.
const fontMIME = "application/x-font-woff"

// Downloader fetches a font file by URL.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// Builder turns a family's catalog files into one CSS block of @font-face
// rules with the font data embedded as base64.
type Builder struct {
	Downloader Downloader
	Logger     *log.Logger
}

// NewBuilder creates a Builder. If logger is nil, log.Default() is used.
func NewBuilder(d Downloader, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{Downloader: d, Logger: logger}
}

// Build returns the concatenated @font-face rules for family.
//
// Only keys in [AllowedStyles] are used, and rules are emitted in that
// order regardless of the order of files. Each file is downloaded once; a
// failed download contributes nothing. Build returns "" when no file was
// accepted or every download failed.
func (b *Builder) Build(ctx context.Context, family string, files map[string]string) string {
	var sb strings.Builder
	for _, key := range AllowedStyles {
		url, ok := files[key]
		if !ok {
			continue
		}
		data, err := b.Downloader.Download(ctx, url)
		if err != nil {
			b.Logger.Warn("skipping font file", "family", family, "style", key, "err", err)
			continue
		}
		sb.WriteString(FaceRule(family, key, data))
	}
	return sb.String()
}

// FaceRule renders a single @font-face rule for one style of family.
func FaceRule(family, key string, data []byte) string {
	style, weight := ClassifyStyle(key)
	src := fmt.Sprintf("data:%s;base64,%s", fontMIME, base64.StdEncoding.EncodeToString(data))
	return fmt.Sprintf("@font-face {\n"+
		"  font-family: '%s';\n"+
		"  font-style: %s;\n"+
		"  font-weight: %s;\n"+
		"  src: local('%s'), local('%s-%s'), url(%s) format('woff');\n"+
		"}\n",
		family, style, weight, family, family, upperFirst(key), src)
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
