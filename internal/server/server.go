// Package server serves the presentation: the go-app page, the WASM binary and static assets.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/janpfeifer/GoMentalist/internal/config"
	"github.com/janpfeifer/GoMentalist/internal/frontend"
	"github.com/janpfeifer/GoMentalist/internal/trick"
	"github.com/klauspost/compress/gzhttp"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// AppName is shown in the page title and the web manifest.
const AppName = "GoMentalist"

// ServerState is reported once the server is listening.
type ServerState struct {
	Address string
}

// NewHandler returns the HTTP handler of the presentation.
func NewHandler(cfg *config.Config) (http.Handler, error) {
	encoded, err := cfg.Trick.Encode()
	if err != nil {
		return nil, err
	}

	// Global state used by server-side prerendering.
	frontend.InitStateWithSettings(&cfg.Trick)

	// Register go-app routes so the server knows how to prerender them
	app.Route("/", func() app.Composer { return &frontend.App{} })

	h := &app.Handler{
		Name:        AppName,
		Title:       "🔮 " + AppName,
		Description: "A mind reading trick",
		Version:     trick.Version,
		Styles: []string{
			"/web/css/main.css",
		},
		Env: map[string]string{
			config.EnvTrick: encoded,
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog)
	r.Use(compress)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "ok %s\n", trick.Version)
	})

	// We want to serve /web for static files, including the compiled app.wasm.
	r.Handle("/web/*", http.StripPrefix("/web/", http.FileServer(http.Dir(cfg.WebDir))))

	// Everything else is the go-app UI.
	r.Handle("/*", h)
	return r, nil
}

// compress gzips responses when the client accepts it; app.wasm shrinks several times.
func compress(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}

// accessLog logs one line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		if status >= http.StatusInternalServerError {
			klog.Errorf("http: %s %s %d %s req=%s", r.Method, r.URL.Path, status, time.Since(start), middleware.GetReqID(r.Context()))
			return
		}
		klog.V(1).Infof("http: %s %s %d %s req=%s", r.Method, r.URL.Path, status, time.Since(start), middleware.GetReqID(r.Context()))
	})
}

// Run starts the server and blocks until the context is canceled.
// If cfg.Addr is empty it listens on an automatic port on localhost.
// The listening address is sent to started, if not nil.
func Run(ctx context.Context, cfg *config.Config, started chan<- *ServerState) error {
	handler, err := NewHandler(cfg)
	if err != nil {
		return err
	}

	addr := cfg.Addr
	if addr == "" {
		addr = "localhost:0"
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %q: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		klog.Infof("Server started on %s", listener.Addr())
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			klog.Errorf("Server error: %v", err)
			serveErr <- err
		}
		close(serveErr)
	}()
	if started != nil {
		started <- &ServerState{Address: listener.Addr().String()}
	}

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}

	// Graceful shutdown with 5 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	klog.Infof("Shutting down server...")
	return srv.Shutdown(shutdownCtx)
}
