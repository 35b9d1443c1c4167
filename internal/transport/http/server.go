package http

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/curvelabs/launchpool/internal/config"
	"github.com/curvelabs/launchpool/internal/service"
)

// Server represents the HTTP transport layer.
type Server struct {
	svc service.Service
	mux *http.ServeMux
	log *zap.Logger

	graceTimeout      time.Duration
	readHeaderTimeout time.Duration
	requestTimeout    time.Duration
}

// NewServer creates a new HTTP server with registered routes.
func NewServer(svc service.Service, log *zap.Logger, cfg config.Config) *Server {
	s := &Server{
		svc: svc,
		mux: http.NewServeMux(),
		log: log,

		graceTimeout:      cfg.GraceTimeout,
		readHeaderTimeout: cfg.ReadHeaderTimeout,
		requestTimeout:    cfg.RequestTimeout,
	}

	s.mux.HandleFunc("/quote", s.handleQuote)
	s.mux.HandleFunc("/pool", s.handlePool)
	s.mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("pong")); err != nil {
			s.log.Error("ping write error", zap.Error(err))
		}
	})

	return s
}

// ListenAndServe starts the HTTP server and enables graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.logMiddleware(s.mux),
		ReadHeaderTimeout: s.readHeaderTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		s.log.Info("http server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Fatal("listen", zap.Error(err))
		}
	}()

	// Block until a signal is received.
	<-stop
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), s.graceTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "srv.Shutdown")
	}
	s.log.Info("server stopped gracefully")
	return nil
}

// logMiddleware logs each HTTP request and the time taken to process it.
func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("url", r.URL.String()),
			zap.Duration("took", time.Since(start)),
		)
	})
}
