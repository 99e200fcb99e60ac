// Package server exposes the shifter over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"shift/internal/ctxlog"
	"time"
)

type Server struct {
	addr            string
	handler         http.Handler
	anti            *antidos
	shutdownTimeout time.Duration
}

func New(config Config) *Server {
	if config.Port == 0 {
		panic("server: port is required")
	}
	if config.AntidosBuckets == 0 {
		panic("server: antidosBuckets is required")
	}
	if config.AntidosPeriod == 0 {
		panic("server: antidosPeriod is required")
	}
	if config.ShutdownTimeout == 0 {
		panic("server: shutdownTimeout is required")
	}
	if config.MaxBodyBytes == 0 {
		panic("server: maxBodyBytes is required")
	}

	anti := newAntidos(config.AntidosBuckets, config.AntidosPeriod)

	mux := http.NewServeMux()

	slog.Info("registering handler", "path", "/shift")
	mux.Handle("POST /shift", anti.middleware(shiftHandler(config.MaxBodyBytes)))

	slog.Info("registering handler", "path", "/healthz")
	mux.Handle("GET /healthz", healthHandler())

	handler := http.Handler(mux)
	handler = recoverMiddleware(handler)
	handler = logMiddleware(handler)

	return &Server{
		addr:            fmt.Sprintf("0.0.0.0:%d", config.Port),
		handler:         handler,
		anti:            anti,
		shutdownTimeout: config.ShutdownTimeout,
	}
}

// Handler returns the root handler of s with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	return s.Serve(ctx, lis)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	logger := ctxlog.Get(ctx)
	defer s.anti.stop()

	srv := &http.Server{
		Handler:     s.handler,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveErrCh := make(chan error, 1)
	go func() {
		defer cancel()
		logger.Info("server is running", "addr", lis.Addr().String())
		serveErrCh <- srv.Serve(lis)
	}()

	<-ctx.Done()

	logger.Info("server is shutting down")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer stopCancel()
	shutdownErr := srv.Shutdown(stopCtx)

	if errors.Is(shutdownErr, context.DeadlineExceeded) {
		logger.Error("server shutdown timeout exceeded")
	} else if shutdownErr == nil {
		logger.Info("all clients closed successfully")
	}

	serveErr := <-serveErrCh
	if errors.Is(serveErr, http.ErrServerClosed) {
		serveErr = nil
	}

	return errors.Join(serveErr, shutdownErr)
}
