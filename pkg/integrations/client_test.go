package integrations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/themefont/pkg/observability"
)

func TestNewClient(t *testing.T) {
	headers := map[string]string{"User-Agent": UserAgent}
	client := NewClient(headers)

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.headers["User-Agent"] != UserAgent {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestNewClientNilHeaders(t *testing.T) {
	client := NewClient(nil)
	if client.headers != nil {
		t.Error("NewClient() should allow nil headers")
	}
}

func TestClientSendsDefaultHeaders(t *testing.T) {
	var receivedUA string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedUA = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient(map[string]string{"User-Agent": UserAgent})
	if _, err := client.GetBytes(context.Background(), server.URL); err != nil {
		t.Fatalf("GetBytes() error: %v", err)
	}
	if receivedUA != UserAgent {
		t.Errorf("User-Agent = %q, want %q", receivedUA, UserAgent)
	}
}

func TestClientGetBytes(t *testing.T) {
	payload := []byte{0x77, 0x4f, 0x46, 0x46, 0x00, 0x01}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	data, err := NewClient(nil).GetBytes(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetBytes() error: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("GetBytes() = %v, want %v", data, payload)
	}
}

func TestClientGetBytes404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewClient(nil).GetBytes(context.Background(), server.URL)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetBytes() error = %v, want ErrNotFound", err)
	}
}

func TestClientGetBytes500(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(nil).GetBytes(context.Background(), server.URL)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("GetBytes() error = %v, want ErrNetwork", err)
	}
	if calls != 1 {
		t.Errorf("server called %d times, want exactly 1 attempt", calls)
	}
}

func TestClientUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(nil).GetBytes(context.Background(), url)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("GetBytes() error = %v, want ErrNetwork", err)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	requests  int
	responses []int
}

func (h *recordingHTTPHooks) OnRequest(context.Context, string, string, string) { h.requests++ }
func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _, _ string, code int, _ time.Duration) {
	h.responses = append(h.responses, code)
}

func TestClientReportsHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	_, _ = NewClient(nil).GetBytes(context.Background(), server.URL)

	if hooks.requests != 1 {
		t.Errorf("OnRequest called %d times, want 1", hooks.requests)
	}
	if len(hooks.responses) != 1 || hooks.responses[0] != http.StatusTeapot {
		t.Errorf("OnResponse codes = %v, want [418]", hooks.responses)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		wantErr  bool
		wantType error
	}{
		{name: "200 OK", code: 200},
		{name: "404 Not Found", code: 404, wantErr: true, wantType: ErrNotFound},
		{name: "500 Internal Server Error", code: 500, wantErr: true, wantType: ErrNetwork},
		{name: "400 Bad Request", code: 400, wantErr: true, wantType: ErrNetwork},
		{name: "403 Forbidden", code: 403, wantErr: true, wantType: ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(tt.code)
			if (err != nil) != tt.wantErr {
				t.Fatalf("checkStatus(%d) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
			if tt.wantType != nil && !errors.Is(err, tt.wantType) {
				t.Errorf("checkStatus(%d) error = %v, want %v", tt.code, err, tt.wantType)
			}
		})
	}
}

func TestNormalizeFamily(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already normal", "Roboto", "Roboto"},
		{"trim spaces", "  Roboto  ", "Roboto"},
		{"collapse inner", "Open   Sans", "Open Sans"},
		{"case preserved", "open sans", "open sans"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeFamily(tt.input); got != tt.want {
				t.Errorf("NormalizeFamily(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestURLEncode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"space", "hello world", "hello+world"},
		{"special chars", "a=1&b=2", "a%3D1%26b%3D2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := URLEncode(tt.input); got != tt.want {
				t.Errorf("URLEncode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient()
	if client == nil {
		t.Fatal("NewHTTPClient() returned nil")
	}
	if client.Timeout != httpTimeout {
		t.Errorf("Timeout = %v, want %v", client.Timeout, httpTimeout)
	}
}
