package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/themefont/pkg/config"
	tferrors "github.com/matzehuels/themefont/pkg/errors"
	"github.com/matzehuels/themefont/pkg/integrations/googlefonts"
	"github.com/matzehuels/themefont/pkg/options"
)

// isolateEnv clears the environment overrides so tests only see their
// config file.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"WEB_FONT", "THEME_FONTS", "GOOGLE_FONT_KEY", "DEV_MODE",
		"MUNICIPIO_STYLEGUIDE_URI", "STYLEGUIDE_VERSION", "MUNICIPIO_PATH",
		"THEMEFONT_TEMPLATE_URI", "THEMEFONT_COLOR_SCHEME", "THEMEFONT_MULTISITE",
		"THEMEFONT_SITE_ID", "THEMEFONT_SETTINGS_DRIVER", "THEMEFONT_SETTINGS_DSN",
		"THEMEFONT_LISTEN",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

// newTestTheme writes a theme dir with a local catalog whose files are served
// by an httptest server, plus a config file pointing at it.
func newTestTheme(t *testing.T, webFont string) (cfgPath, themeDir string) {
	t.Helper()
	isolateEnv(t)

	fonts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("woff" + r.URL.Path))
	}))
	t.Cleanup(fonts.Close)

	themeDir = t.TempDir()
	fontsDir := filepath.Join(themeDir, "assets", "source", "fonts")
	if err := os.MkdirAll(fontsDir, 0755); err != nil {
		t.Fatal(err)
	}
	catalog := `{"items":[` +
		`{"family":"Roboto","category":"sans-serif","files":{"regular":"` + fonts.URL + `/r","italic":"` + fonts.URL + `/i"}},` +
		`{"family":"Lora","category":"serif","files":{"regular":"` + fonts.URL + `/l"}}]}`
	if err := os.WriteFile(filepath.Join(fontsDir, googlefonts.ListFile), []byte(catalog), 0644); err != nil {
		t.Fatal(err)
	}

	cfgPath = filepath.Join(t.TempDir(), "config.toml")
	body := "theme_dir = " + quote(themeDir) + "\n" +
		"web_font = " + quote(webFont) + "\n" +
		"theme_fonts = \"Roboto,Arial\"\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return cfgPath, themeDir
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `\`, `\\`) + `"`
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	sort.Strings(names)

	for _, want := range []string{"cache", "catalog", "check", "head", "refresh", "resolve", "serve", "settings", "styleguide"} {
		if i := sort.SearchStrings(names, want); i >= len(names) || names[i] != want {
			t.Errorf("missing subcommand %q in %v", want, names)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("root should define --config")
	}
}

func TestResolveSaveAndRefresh(t *testing.T) {
	cfgPath, themeDir := newTestTheme(t, "Roboto")
	cachePath := filepath.Join(themeDir, "assets", "source", "fonts", "roboto.json")

	if err := execute(t, "--config", cfgPath, "resolve", "--save"); err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if _, err := os.Stat(cachePath); err != nil {
		t.Fatalf("cache document not written: %v", err)
	}

	backend, err := options.OpenSQLite(filepath.Join(themeDir, config.DefaultSQLiteFile))
	if err != nil {
		t.Fatal(err)
	}
	s, err := options.NewSiteSettings(backend, "1").Load(context.Background())
	backend.Close()
	if err != nil || s.FontFamily != "Roboto" || s.MD5 == "" {
		t.Fatalf("settings after resolve --save = %+v, %v", s, err)
	}

	if err := execute(t, "--config", cfgPath, "refresh"); err != nil {
		t.Fatalf("refresh error: %v", err)
	}
	if _, err := os.Stat(cachePath); !os.IsNotExist(err) {
		t.Error("refresh should remove the cache document")
	}
	if _, err := os.Stat(filepath.Join(themeDir, "assets", "source", "fonts", googlefonts.ListFile)); err != nil {
		t.Error("refresh without an api key must keep the local font list")
	}
}

func TestResolveLogsUnreadableCache(t *testing.T) {
	cfgPath, themeDir := newTestTheme(t, "Roboto")
	// A directory where the cache document belongs cannot be read or written.
	if err := os.MkdirAll(filepath.Join(themeDir, "assets", "source", "fonts", "roboto.json"), 0755); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	root := New(&logs, LogDebug).RootCommand()
	root.SetArgs([]string{"--config", cfgPath, "resolve"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())

	if !tferrors.Is(err, tferrors.ErrCodeStorage) {
		t.Errorf("resolve error = %v, want STORAGE_ERROR", err)
	}
	if !strings.Contains(logs.String(), "font cache unreadable") {
		t.Errorf("debug log should report the unreadable cache, got:\n%s", logs.String())
	}
}

func TestCheck(t *testing.T) {
	cfgPath, themeDir := newTestTheme(t, "Lora")

	if err := execute(t, "--config", cfgPath, "check"); err != nil {
		t.Fatalf("check error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(themeDir, "assets", "source", "fonts", "lora.json")); err != nil {
		t.Errorf("check should build the cache document: %v", err)
	}
}

func TestResolveRequiresFamily(t *testing.T) {
	cfgPath, _ := newTestTheme(t, "")

	if err := execute(t, "--config", cfgPath, "resolve"); err != errNoWebFont {
		t.Errorf("resolve without family error = %v, want errNoWebFont", err)
	}
}

func TestFamilyArg(t *testing.T) {
	cfg := config.Default()
	cfg.WebFont = "Roboto"

	if got, _ := familyArg(cfg, nil); got != "Roboto" {
		t.Errorf("familyArg(nil) = %q, want configured web font", got)
	}
	if got, _ := familyArg(cfg, []string{"Lora"}); got != "Lora" {
		t.Errorf("familyArg(Lora) = %q", got)
	}
	if got, _ := familyArg(cfg, []string{"  Open   Sans "}); got != "Open Sans" {
		t.Errorf("familyArg() = %q, want whitespace normalized", got)
	}
	if got, _ := familyArg(cfg, []string{"   "}); got != "Roboto" {
		t.Errorf("familyArg(blank) = %q, want configured web font", got)
	}
	cfg.WebFont = ""
	if _, err := familyArg(cfg, nil); !tferrors.Is(err, tferrors.ErrCodeInvalidInput) {
		t.Errorf("familyArg() without any family error = %v, want INVALID_INPUT", err)
	}
}

func TestFilterFamilies(t *testing.T) {
	items := []googlefonts.Family{
		{Family: "Roboto", Category: "sans-serif"},
		{Family: "Lora", Category: "serif"},
		{Family: "Roboto Slab", Category: "serif"},
	}

	tests := []struct {
		category, match string
		want            []string
	}{
		{"", "", []string{"Lora", "Roboto", "Roboto Slab"}},
		{"serif", "", []string{"Lora", "Roboto Slab"}},
		{"SERIF", "slab", []string{"Roboto Slab"}},
		{"", "rob", []string{"Roboto", "Roboto Slab"}},
		{"monospace", "", nil},
	}
	for _, tt := range tests {
		got := filterFamilies(items, tt.category, tt.match)
		var names []string
		for _, f := range got {
			names = append(names, f.Family)
		}
		if strings.Join(names, ",") != strings.Join(tt.want, ",") {
			t.Errorf("filterFamilies(%q, %q) = %v, want %v", tt.category, tt.match, names, tt.want)
		}
	}
}

func TestFamilyListModel(t *testing.T) {
	families := []googlefonts.Family{
		{Family: "Lora", Files: map[string]string{"regular": "u"}},
		{Family: "Material Icons", Files: map[string]string{"100": "u"}},
		{Family: "Roboto", Files: map[string]string{"regular": "u", "700": "u"}},
	}
	m := NewFamilyListModel(families, "Roboto")
	if m.Cursor != 2 {
		t.Fatalf("cursor = %d, want on current family", m.Cursor)
	}

	key := func(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

	next, _ := m.Update(key("k"))
	m = next.(FamilyListModel)
	if m.Cursor != 1 {
		t.Fatalf("cursor after up = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(FamilyListModel)
	if m.Selected != nil {
		t.Error("families without embeddable styles must not be selectable")
	}

	next, _ = m.Update(key("j"))
	m = next.(FamilyListModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(FamilyListModel)
	if m.Selected == nil || m.Selected.Family != "Roboto" || cmd == nil {
		t.Errorf("Selected = %+v, want Roboto and quit", m.Selected)
	}

	view := m.View()
	for _, want := range []string{"Select Font Family", "Roboto", "2/2", "[3/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatRelativeTime(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "—"},
		{"not a date", "not a date"},
		{"2015-03-01", "Mar 2015"},
	}
	for _, tt := range tests {
		if got := formatRelativeTime(tt.in); got != tt.want {
			t.Errorf("formatRelativeTime(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
