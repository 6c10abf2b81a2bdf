package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	httpAdapter "github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/adapters/http"
)

// Serve runs the preview server for the project at path until ctx is
// cancelled, then shuts it down gracefully.
func (a *App) Serve(ctx context.Context, path string) error {
	handler := httpAdapter.NewHandler(&httpAdapter.Server{
		Loader:  a.Helper.Loader(path),
		Compile: a.Helper.Compile,
		Metrics: a.Metrics,
		Logger:  a.Logger,
	})
	srv := &http.Server{
		Addr:              a.Config.Serve.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.Logger.Info("Starting preview server", "addr", srv.Addr, "project", path)
		printSystemMessage(a.Out, "Serving '%s' on %s", path, srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		a.Logger.Info("Shutting down preview server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Close()
			return err
		}
		return nil
	}
}
