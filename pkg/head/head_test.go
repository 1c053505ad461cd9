package head

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/themefont/pkg/styleguide"
	"github.com/matzehuels/themefont/pkg/webfont"
)

type staticSettings struct {
	s   webfont.Settings
	err error
}

func (s staticSettings) Load(context.Context) (webfont.Settings, error) { return s.s, s.err }
func (staticSettings) Save(context.Context, webfont.Settings) error     { return nil }
func (staticSettings) Clear(context.Context) error                      { return nil }

func write(s string) Func {
	return func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func TestRegistry_Order(t *testing.T) {
	reg := &Registry{}
	reg.Add(200, "late", write("c"))
	reg.Add(5, "first", write("a"))
	reg.Add(10, "middle", write("b"))
	reg.Add(5, "second", write("a2"))

	want := []string{"first", "second", "middle", "late"}
	if got := reg.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	var buf bytes.Buffer
	if err := reg.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if got := buf.String(); got != "aa2bc" {
		t.Errorf("Render() = %q, want %q", got, "aa2bc")
	}
}

func TestRegistry_RenderStopsOnError(t *testing.T) {
	reg := &Registry{}
	boom := errors.New("boom")
	reg.Add(1, "ok", write("a"))
	reg.Add(2, "bad", func(context.Context, io.Writer) error { return boom })
	reg.Add(3, "never", write("z"))

	var buf bytes.Buffer
	err := reg.Render(context.Background(), &buf)
	if !errors.Is(err, boom) {
		t.Fatalf("Render() error = %v, want boom", err)
	}
	if !strings.Contains(err.Error(), "bad") {
		t.Errorf("error should name the fragment: %v", err)
	}
	if buf.String() != "a" {
		t.Errorf("Render() wrote %q after failure", buf.String())
	}
}

func TestFontVar(t *testing.T) {
	settings := staticSettings{s: webfont.Settings{
		FontFamily: "Roboto",
		MD5:        "abc",
		FontFile:   "/assets/source/fonts/roboto.json",
	}}

	var buf bytes.Buffer
	if err := FontVar(settings, "https://example.com/wp-content/themes/municipio")(context.Background(), &buf); err != nil {
		t.Fatalf("FontVar() error: %v", err)
	}

	want := `<script type="text/javascript">/* <![CDATA[ */ ` +
		`var webFont = {"fontFamily":"Roboto","md5":"abc","fontFile":"https://example.com/wp-content/themes/municipio/assets/source/fonts/roboto.json"};` +
		` /* ]]> */</script>`
	if got := buf.String(); got != want {
		t.Errorf("FontVar() =\n%s\nwant\n%s", got, want)
	}
}

func TestFontVar_LoadError(t *testing.T) {
	err := FontVar(staticSettings{err: errors.New("db down")}, "")(context.Background(), io.Discard)
	if err == nil {
		t.Error("FontVar() should surface settings errors")
	}
}

func TestFontJS(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	if err := FontJS(dir)(context.Background(), &buf); err != nil {
		t.Fatalf("FontJS() missing file error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("FontJS() without script = %q, want nothing", buf.String())
	}

	path := filepath.Join(dir, FontJSPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("loadFont(webFont);"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := FontJS(dir)(context.Background(), &buf); err != nil {
		t.Fatalf("FontJS() error: %v", err)
	}
	want := `<script type="text/javascript">/* <![CDATA[ */ loadFont(webFont); /* ]]> */</script>`
	if got := buf.String(); got != want {
		t.Errorf("FontJS() = %q, want %q", got, want)
	}
}

func TestFontFamilies(t *testing.T) {
	var buf bytes.Buffer
	if err := FontFamilies("Roboto,Helvetica,Arial")(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	want := "<style> body { font-family: Roboto,Helvetica,Arial; } </style>"
	if got := buf.String(); got != want {
		t.Errorf("FontFamilies() = %q, want %q", got, want)
	}
}

func TestStyleguide_RequestDevMode(t *testing.T) {
	fn := Styleguide(styleguide.New(styleguide.Config{URI: "//sg", ColorScheme: "blue"}))

	var buf bytes.Buffer
	if err := fn(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `href="//sg//css/hbg-prime-blue.min.css"`) {
		t.Errorf("Styleguide() = %s", buf.String())
	}

	buf.Reset()
	ctx := WithRequest(context.Background(), httptest.NewRequest("GET", "/?DEV_MODE=true", nil))
	if err := fn(ctx, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), styleguide.DevURI+"/js/hbg-prime.dev.js") {
		t.Errorf("Styleguide() with DEV_MODE=true = %s", buf.String())
	}
}

func TestNew(t *testing.T) {
	sg := styleguide.New(styleguide.Config{})
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{"nothing configured", Options{}, []string{}},
		{"web font", Options{WebFont: "Roboto", Settings: staticSettings{}}, []string{"font-var", "font-js"}},
		{"web font without settings", Options{WebFont: "Roboto"}, []string{}},
		{"theme fonts", Options{ThemeFonts: "Arial"}, []string{"font-families"}},
		{
			"everything",
			Options{WebFont: "Roboto", Settings: staticSettings{}, ThemeFonts: "Arial", Styleguide: sg},
			[]string{"font-var", "font-js", "styleguide", "font-families"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.opts).Names(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Names() = %v, want %v", got, tt.want)
			}
		})
	}
}
