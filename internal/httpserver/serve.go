// Package httpserver runs an http.Server until its context is cancelled.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"portfolio/backend/internal/logutil"
)

// ShutdownTimeout bounds how long in-flight requests may run after the context is cancelled.
const ShutdownTimeout = 30 * time.Second

func newServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute * 2,
	}
}

// Serve listens on bind and serves handler until ctx is done, then shuts down gracefully.
// It returns nil after a clean shutdown.
func Serve(ctx context.Context, bind string, handler http.Handler) error {
	lis, err := net.Listen("tcp", bind)
	if err != nil {
		return err
	}
	return ServeListener(ctx, lis, handler)
}

// ServeListener is Serve on an existing listener. The listener is closed on return.
func ServeListener(ctx context.Context, lis net.Listener, handler http.Handler) error {
	server := newServer(handler)
	log := logutil.GetOrDefault(ctx).With().Str("server.addr", lis.Addr().String()).Logger()

	errc := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting HTTP server")
		err := server.Serve(lis)
		if errors.Is(err, http.ErrServerClosed) {
			log.Info().Msg("Server closed")
			err = nil
		}
		errc <- err
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Info().Msg("Initiating shutdown process")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Info().Msg("Shutdown completed")
		return <-errc
	}
}
