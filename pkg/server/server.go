// Package server hosts the theme's HTTP surface: a page whose head carries
// the web-font fragments, the administrative load that keeps the font
// settings in sync, and the font cache documents the browser fetches.
//
// Routes:
//
//	GET /                      page with the rendered head
//	GET /wp-admin              admin hooks, then the current settings as JSON
//	GET /assets/source/fonts/* cache and catalog documents
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	tferrors "github.com/matzehuels/themefont/pkg/errors"
	"github.com/matzehuels/themefont/pkg/fontcache"
	"github.com/matzehuels/themefont/pkg/head"
	"github.com/matzehuels/themefont/pkg/webfont"
)

// RefreshParam triggers a cache invalidation on the admin load.
const RefreshParam = "refreshWebFont"

// RefreshMessage is the response body after a refresh.
const RefreshMessage = "The font settings cache has been trashed."

// Admin hook priorities.
const (
	PriorityRefresh = 5
	PriorityCheck   = 10
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Config defines the inputs for the HTTP server.
type Config struct {
	Addr     string
	WebFont  string            // desired family; empty disables the admin hooks
	Resolver *webfont.Resolver // required
	Head     *head.Registry    // page head fragments; nil renders an empty head
	FontsDir string            // served under /assets/source/fonts/
	Logger   *log.Logger
}

// AdminHook runs during the administrative load. Returning halt ends the
// request; the hook has then written the response.
type AdminHook struct {
	Priority int
	Name     string
	Run      func(w http.ResponseWriter, r *http.Request) (halt bool, err error)
}

type handler struct {
	cfg    Config
	hooks  []AdminHook
	logger *log.Logger
}

// NewHandler assembles the router.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Resolver == nil {
		return nil, errors.New("resolver is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Head == nil {
		cfg.Head = &head.Registry{}
	}

	h := &handler{cfg: cfg, logger: cfg.Logger}
	if cfg.WebFont != "" {
		h.addHook(AdminHook{Priority: PriorityCheck, Name: "check", Run: h.check})
		h.addHook(AdminHook{Priority: PriorityRefresh, Name: "refresh", Run: h.refresh})
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(cfg.Logger))

	r.Get("/", h.page)
	r.Get("/wp-admin", h.admin)
	if cfg.FontsDir != "" {
		prefix := fontcache.RelDir
		r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.FontsDir))))
	}
	return r, nil
}

func (h *handler) addHook(hook AdminHook) {
	h.hooks = append(h.hooks, hook)
	sort.SliceStable(h.hooks, func(i, j int) bool {
		return h.hooks[i].Priority < h.hooks[j].Priority
	})
}

func (h *handler) page(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	if err := h.cfg.Head.Render(head.WithRequest(r.Context(), r), &buf); err != nil {
		h.logger.Error("render head", "err", err, "request_id", RequestIDFromContext(r.Context()))
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}
	buf.WriteString("\n</head>\n<body></body>\n</html>\n")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (h *handler) admin(w http.ResponseWriter, r *http.Request) {
	for _, hook := range h.hooks {
		halt, err := hook.Run(w, r)
		if err != nil {
			h.logger.Error("admin hook failed", "hook", hook.Name, "err", err)
			writeError(w, err)
			return
		}
		if halt {
			return
		}
	}

	s, err := h.cfg.Resolver.Snapshot(r.Context())
	if err != nil {
		writeError(w, tferrors.Wrap(tferrors.ErrCodeStorage, err, "load font settings"))
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *handler) refresh(w http.ResponseWriter, r *http.Request) (bool, error) {
	if _, ok := r.URL.Query()[RefreshParam]; !ok {
		return false, nil
	}
	if err := h.cfg.Resolver.Invalidate(r.Context(), h.cfg.WebFont); err != nil {
		return true, err
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintln(w, RefreshMessage)
	return true, nil
}

func (h *handler) check(_ http.ResponseWriter, r *http.Request) (bool, error) {
	ran, err := h.cfg.Resolver.Check(r.Context(), h.cfg.WebFont)
	if err != nil {
		// The settings were still saved; the page renders without the embed.
		if errors.Is(err, webfont.ErrNoFontList) {
			h.logger.Warn("no font list available", "family", h.cfg.WebFont)
			return false, nil
		}
		return false, err
	}
	if ran {
		h.logger.Info("font settings updated", "family", h.cfg.WebFont)
	}
	return false, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch tferrors.GetCode(err) {
	case tferrors.ErrCodeInvalidFamily, tferrors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case tferrors.ErrCodeNoFontList:
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{
		"error":   strings.ToLower(string(tferrors.GetCode(err))),
		"message": tferrors.UserMessage(err),
	})
}

// Server runs the handler on a listener.
type Server struct {
	addr       string
	httpServer *http.Server
	logger     *log.Logger
}

// New builds a configured server.
func New(cfg Config) (*Server, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		addr:   addr,
		logger: logger,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}, nil
}

// ListenAndServe runs the server until ctx ends, then drains in-flight
// requests with a bounded shutdown.
func (s *Server) ListenAndServe(ctx context.Context) error {
	serveErr := make(chan error, 1)
	s.logger.Info("listening", "addr", s.addr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
