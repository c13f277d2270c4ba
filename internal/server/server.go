// Package server exposes the rendered site over HTTP. Routing, file serving,
// and the template watcher live here; everything content-shaped is delegated
// to the render engine.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/codywizlet/arse/internal/config"
	"github.com/codywizlet/arse/internal/logging"
	"github.com/codywizlet/arse/internal/render"
)

// Server serves a site described by an AppConfig.
type Server struct {
	cfg    *config.AppConfig
	engine *render.Engine
	log    logging.Logger
	mux    *http.ServeMux
}

// New wires the route table for the given engine.
func New(cfg *config.AppConfig, engine *render.Engine, log logging.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		engine: engine,
		log:    log.WithComponent("server"),
		mux:    http.NewServeMux(),
	}

	files := http.FileServer(http.Dir(cfg.Docpaths.Webroot))

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.Handle("GET /static/ext/{file...}", files)
	s.mux.Handle("GET /{topic}/ext/{file...}", files)
	s.mux.HandleFunc("GET /{topic}", s.handleTopic)
	s.mux.HandleFunc("GET /{topic}/posts/{post}", s.handlePost)

	return s
}

// Handler returns the route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Server.Bind, s.cfg.Server.Port)
}

// Start runs the HTTP server until ctx is cancelled, watching the templates
// directory for edits and reloading the engine when they land.
func (s *Server) Start(ctx context.Context) error {
	stopWatch, err := s.watchTemplates(ctx)
	if err != nil {
		// A broken watcher only costs hot reload; serving still works.
		s.log.Warn(ctx, err, "template watcher unavailable")
	} else {
		defer stopWatch()
	}

	httpServer := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Error(shutdownCtx, err, "error during server shutdown")
		}
	}()

	s.log.Info(ctx, "running server", "addr", httpServer.Addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed on %q: %w", httpServer.Addr, err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, func() (string, error) {
		return s.engine.RenderIndex()
	})
}

func (s *Server) handleTopic(w http.ResponseWriter, r *http.Request) {
	topic := r.PathValue("topic")
	s.renderPage(w, r, func() (string, error) {
		return s.engine.RenderTopic(topic)
	})
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	topic := r.PathValue("topic")
	post := r.PathValue("post")

	// A post name is a single path segment; anything trying to climb out of
	// the posts directory is not a post.
	if post != filepath.Base(post) || strings.HasPrefix(post, ".") {
		http.NotFound(w, r)
		return
	}

	s.renderPage(w, r, func() (string, error) {
		return s.engine.RenderPost(topic, post)
	})
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, render func() (string, error)) {
	page, err := render()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, page)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, render.ErrUnknownTopic) || isNotExist(err) {
		http.NotFound(w, r)
		return
	}
	s.log.Error(r.Context(), err, "failed rendering page", "path", r.URL.Path)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// isNotExist reports whether err stems from a missing file, which surfaces
// as 404 rather than 500.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
