// Package web composes the Insight Hunter browser-facing service.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	module "github.com/insight-hunter/insight-hunter/internal/web/module"
	"github.com/insight-hunter/insight-hunter/internal/web/modules/authapi"
	"github.com/insight-hunter/insight-hunter/internal/web/modules/demo"
	"github.com/insight-hunter/insight-hunter/internal/web/modules/onboard"
	"github.com/insight-hunter/insight-hunter/internal/web/platform/httpx"
	"github.com/insight-hunter/insight-hunter/internal/web/platform/observability"
	"github.com/insight-hunter/insight-hunter/internal/web/routepath"
	webstatic "github.com/insight-hunter/insight-hunter/internal/web/static"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second

	// API rate limit, per client IP.
	rateLimitRequests = 10
	rateLimitWindow   = time.Minute
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr     string
	Dependencies module.Dependencies
}

// Server hosts the HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// DefaultModules returns the standard module set.
func DefaultModules(deps module.Dependencies) []module.Module {
	return []module.Module{
		onboard.New(deps),
		authapi.New(deps),
		demo.New(deps),
	}
}

// NewHandler builds the root handler from the default module set.
func NewHandler(cfg Config) (http.Handler, error) {
	deps := cfg.Dependencies
	if deps.Sessions == nil {
		return nil, errors.New("session store is required")
	}
	if deps.Sequencer == nil {
		return nil, errors.New("sequencer is required")
	}
	if deps.Catalog == nil {
		return nil, errors.New("step catalog is required")
	}
	if deps.Cache == nil {
		return nil, errors.New("render cache is required")
	}

	mux := http.NewServeMux()
	for _, mod := range DefaultModules(deps) {
		mod.Register(mux)
	}
	mux.Handle(http.MethodGet+" "+routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))

	return httpx.Chain(mux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.Trace(),
		observability.RequestLogger(log.Default()),
		apiOnly(httpx.RateLimit(deps.Sessions, rateLimitRequests, rateLimitWindow, "rate")),
	), nil
}

// apiOnly scopes middleware to the /api/ surface.
func apiOnly(mw httpx.Middleware) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		limited := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r != nil && strings.HasPrefix(r.URL.Path, "/api/") {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
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

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
