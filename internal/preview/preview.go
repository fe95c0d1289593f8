// Package preview serves an emitted site locally and rebuilds it when
// authored content changes.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/pipeline"
)

// debounceDelay coalesces bursts of file events (editors write several times
// per save) into one rebuild.
const debounceDelay = 500 * time.Millisecond

// Server watches the content root and serves the output directory with a
// /metrics endpoint. Rebuilds run sequentially; a failed rebuild keeps the
// last good output on disk and is surfaced in the log only.
type Server struct {
	cfg      *config.Config
	service  *pipeline.Service
	recorder *metrics.PrometheusRecorder
}

func NewServer(cfg *config.Config) *Server {
	recorder := metrics.NewPrometheusRecorder(nil)
	return &Server{
		cfg:      cfg,
		service:  pipeline.NewService().SetRecorder(recorder),
		recorder: recorder,
	}
}

// Run builds once, then serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if _, err := s.service.Run(ctx, pipeline.Request{Config: s.cfg}); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := s.watchContentTree(watcher); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Preview.Port),
		Handler: s.handler(),
	}
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", slog.Int("port", s.cfg.Preview.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	s.watchLoop(ctx, watcher, serveErr)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.recorder.HTTPHandler())
	mux.Handle("/", http.FileServer(http.Dir(s.cfg.Output.Directory)))
	return mux
}

// watchContentTree registers the content root and its subdirectories.
// fsnotify watches are not recursive.
func (s *Server) watchContentTree(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(s.cfg.Content.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch content directory %s: %w", path, err)
			}
		}
		return nil
	})
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, serveErr chan error) {
	var rebuild <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-serveErr:
			slog.Error("Preview server failed", logfields.Error(err))
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("Content change detected", logfields.Path(event.Name))
			rebuild = time.After(debounceDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("File watcher error", logfields.Error(err))
		case <-rebuild:
			rebuild = nil
			if _, err := s.service.Run(ctx, pipeline.Request{Config: s.cfg}); err != nil {
				slog.Error("Rebuild failed, keeping last good output", logfields.Error(err))
			}
		}
	}
}
