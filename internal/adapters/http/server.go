package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/todo-backend/internal/platform/config"
)

const defaultShutdownTimeout = 10 * time.Second

// Server runs the todo API on a net/http server and drains in-flight
// requests on Shutdown.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

// NewServer applies cfg's address and timeouts to handler. The header read
// timeout matches the body read timeout. A nil logger discards.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		logger: logger,
	}
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ln)
}

// Serve handles requests arriving on ln. It blocks until the server stops
// and returns nil on graceful shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("todo server listening", slog.String("addr", ln.Addr().String()))

	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving todo API: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight todo requests
// until ctx ends, or for 10s when ctx has no deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultShutdownTimeout)
		defer cancel()
	}

	s.logger.Info("todo server shutting down", slog.String("addr", s.srv.Addr))
	return s.srv.Shutdown(ctx)
}

// Addr is the configured host:port, not the bound address.
func (s *Server) Addr() string {
	return s.srv.Addr
}
