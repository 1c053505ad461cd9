package head

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matzehuels/themefont/pkg/styleguide"
	"github.com/matzehuels/themefont/pkg/webfont"
)

// FontJSPath is the loader script location relative to the theme root.
const FontJSPath = "assets/dist/js/font.min.js"

const (
	cdataOpen  = `<script type="text/javascript">/* <![CDATA[ */ `
	cdataClose = ` /* ]]> */</script>`
)

type webFontVar struct {
	FontFamily string `json:"fontFamily"`
	MD5        string `json:"md5"`
	FontFile   string `json:"fontFile"`
}

// FontVar emits `var webFont = {...};` from the stored settings. fontFile is
// prefixed with templateURI so the browser can fetch the cache document.
func FontVar(settings webfont.SettingsStore, templateURI string) Func {
	return func(ctx context.Context, w io.Writer) error {
		s, err := settings.Load(ctx)
		if err != nil {
			return fmt.Errorf("load font settings: %w", err)
		}
		data, err := json.Marshal(webFontVar{
			FontFamily: s.FontFamily,
			MD5:        s.MD5,
			FontFile:   templateURI + s.FontFile,
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%svar webFont = %s;%s", cdataOpen, data, cdataClose)
		return err
	}
}

// FontJS inlines the font loader script found under themeDir. A missing
// script emits nothing.
func FontJS(themeDir string) Func {
	return func(_ context.Context, w io.Writer) error {
		data, err := os.ReadFile(filepath.Join(themeDir, FontJSPath))
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read font script: %w", err)
		}
		if _, err := io.WriteString(w, cdataOpen); err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		_, err = io.WriteString(w, cdataClose)
		return err
	}
}

// FontFamilies emits the body font-family rule. fonts is a CSS font stack
// such as "Roboto,Helvetica,Arial" and is written verbatim.
func FontFamilies(fonts string) Func {
	return func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<style> body { font-family: %s; } </style>", fonts)
		return err
	}
}

// Styleguide emits the stylesheet link and script tag of the styleguide.
// A request attached with [WithRequest] may switch it to dev assets.
func Styleguide(sg *styleguide.Resolver) Func {
	return func(ctx context.Context, w io.Writer) error {
		r := sg.ForRequest(RequestFromContext(ctx))
		_, err := fmt.Fprintf(w,
			"<link rel=\"stylesheet\" href=\"%s\">\n<script type=\"text/javascript\" src=\"%s\"></script>",
			html.EscapeString(r.StylePath(false)), html.EscapeString(r.ScriptPath()))
		return err
	}
}

// Options selects the fragments registered by [New].
type Options struct {
	WebFont     string                // registers FontVar and FontJS when set
	ThemeFonts  string                // registers FontFamilies when set
	Settings    webfont.SettingsStore // required with WebFont
	TemplateURI string
	ThemeDir    string
	Styleguide  *styleguide.Resolver // registers Styleguide when non-nil
}

// New builds the registry for opts.
func New(opts Options) *Registry {
	reg := &Registry{}
	if opts.WebFont != "" && opts.Settings != nil {
		reg.Add(PriorityFont, "font-var", FontVar(opts.Settings, opts.TemplateURI))
		reg.Add(PriorityFont, "font-js", FontJS(opts.ThemeDir))
	}
	if opts.Styleguide != nil {
		reg.Add(PriorityStyleguide, "styleguide", Styleguide(opts.Styleguide))
	}
	if opts.ThemeFonts != "" {
		reg.Add(PriorityFontFamilies, "font-families", FontFamilies(opts.ThemeFonts))
	}
	return reg
}
