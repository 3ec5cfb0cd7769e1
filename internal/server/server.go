// Package server serves fixture pages over HTTP. Every page load lays the
// fixture out afresh; clicks posted back by the page are hit-tested against
// that layout and kept in an in-memory log for test harnesses to read.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/piwi3910/ScatterBoard/internal/engine"
	"github.com/piwi3910/ScatterBoard/internal/model"
)

// maxClicks bounds the click log of a single fixture.
const maxClicks = 1000

// Click is one pointer event reported by a fixture page.
type Click struct {
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Hit      bool           `json:"hit"`
	Index    int            `json:"index"`
	WidgetID string         `json:"widget_id,omitempty"`
	Label    string         `json:"label,omitempty"`
	Part     engine.HitPart `json:"part,omitempty"`
	At       time.Time      `json:"at"`
}

// session is the current layout of one fixture and the clicks made on it.
type session struct {
	layout model.LayoutResult
	clicks []Click
}

// Server holds the fixtures and the per-fixture sessions.
type Server struct {
	fixtures model.FixtureStore
	logger   *log.Logger

	// override, when set, replaces every fixture's layout settings
	override *model.LayoutSettings

	mu       sync.Mutex
	sessions map[string]*session
}

// Option configures a Server.
type Option func(*Server)

// WithSettings lays out every fixture with settings instead of its own.
func WithSettings(settings model.LayoutSettings) Option {
	return func(s *Server) { s.override = &settings }
}

// New creates a server for the given fixtures. A nil logger discards output.
func New(fixtures model.FixtureStore, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		fixtures: fixtures,
		logger:   logger,
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(s.requestLogger)
	s.RegisterRoutes(r)
	return r
}

// RegisterRoutes mounts the page and API routes onto r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleIndex)
	r.Get("/fixtures/{name}", s.handleFixturePage)

	r.Route("/api/fixtures", func(r chi.Router) {
		r.Get("/", s.handleListFixtures)
		r.Get("/{name}/layout", s.handleLayout)
		r.Get("/{name}/clicks", s.handleListClicks)
		r.Post("/{name}/clicks", s.handleClick)
		r.Delete("/{name}/clicks", s.handleResetClicks)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("fixture server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
		s.logger.Info("shutting down fixture server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// newLayout lays the fixture out and makes it the fixture's current layout,
// clearing its click log. A non-zero seed makes the layout reproducible.
func (s *Server) newLayout(spec model.FixtureSpec, seed uint64) model.LayoutResult {
	settings := spec.Settings
	if s.override != nil {
		settings = *s.override
	}
	if seed != 0 {
		settings.Seed = seed
	}
	result := engine.New(settings).LayoutFixture(spec)

	s.mu.Lock()
	s.sessions[spec.Name] = &session{layout: result}
	s.mu.Unlock()

	s.logger.Debug("layout computed",
		"fixture", spec.Name,
		"seed", result.Seed,
		"widgets", len(result.Widgets),
		"attempts", result.Attempts,
		"fallbacks", result.Fallbacks,
	)
	return result
}

// recordClick hit-tests (x, y) against the fixture's current layout.
// The boolean is false when the fixture has not been laid out yet.
func (s *Server) recordClick(name string, x, y float64) (Click, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[name]
	if !ok {
		return Click{}, false
	}

	click := Click{X: x, Y: y, Index: -1, At: time.Now().UTC()}
	if hit, ok := engine.HitTest(sess.layout.Widgets, x, y); ok {
		click.Hit = true
		click.Index = hit.Index
		click.WidgetID = hit.Widget.Request.ID
		click.Label = hit.Widget.Request.Label
		click.Part = hit.Part
	}

	sess.clicks = append(sess.clicks, click)
	if len(sess.clicks) > maxClicks {
		sess.clicks = sess.clicks[len(sess.clicks)-maxClicks:]
	}
	return click, true
}

// Clicks returns a copy of the fixture's click log.
func (s *Server) Clicks(name string) []Click {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[name]
	if !ok {
		return []Click{}
	}
	return append([]Click{}, sess.clicks...)
}

// CurrentLayout returns the fixture's current layout, if any.
func (s *Server) CurrentLayout(name string) (model.LayoutResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[name]
	if !ok {
		return model.LayoutResult{}, false
	}
	return sess.layout, true
}

func (s *Server) resetClicks(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[name]; ok {
		sess.clicks = nil
	}
}

// requestLogger logs every request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chiMiddleware.GetReqID(r.Context()),
		)
	})
}
