package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	plume "github.com/dennissergeev/exo-lightning-msci-project"
	plumehttp "github.com/dennissergeev/exo-lightning-msci-project/pkg/adapters/http"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/observability"
)

// ShutdownTimeout bounds how long serve waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// Serve exposes the store over HTTP until ctx is cancelled.
func (a *App) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return a.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener.
func (a *App) ServeListener(ctx context.Context, ln net.Listener) error {
	store, closeStore, err := a.OpenStore(ctx)
	if err != nil {
		_ = ln.Close()
		return err
	}
	defer closeStore()

	metrics := observability.NewMetrics(true)
	srv := &http.Server{
		Handler: plumehttp.NewHandler(store, metrics.Handler(),
			plumehttp.WithLogger(a.Logger),
			plumehttp.WithVersion(plume.Version),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.Logger.Info("serving results", "addr", ln.Addr().String(), "store", a.Settings.Store)
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		a.Logger.Info("shutting down", "timeout", ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warn("graceful shutdown did not complete", "error", err)
			return srv.Close()
		}
		return nil
	}
}
