package server

import (
	"context"
	"net/http"
	"time"

	"github.com/sw33tLie/pricebot/internal/utils"
	"github.com/sw33tLie/pricebot/pkg/engine"
)

// ReloadFunc reloads the engine's catalog and returns the loaded item count.
type ReloadFunc func(ctx context.Context) (int, error)

type Server struct {
	Engine *engine.Engine
	Reload ReloadFunc
}

func New(e *engine.Engine, reload ReloadFunc) *Server {
	return &Server{
		Engine: e,
		Reload: reload,
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", s.handlePing)
	mux.HandleFunc("GET /api/price", s.handlePrice)
	mux.HandleFunc("GET /api/items", s.handleItems)
	mux.HandleFunc("GET /api/parse", s.handleParse)
	mux.HandleFunc("POST /api/reload", s.handleReload)

	return logRequests(mux)
}

// Start serves the API on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	utils.Log.Infof("Starting server on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		utils.Log.Debugf("%s %s (%s)", r.Method, r.URL.RequestURI(), time.Since(start))
	})
}
