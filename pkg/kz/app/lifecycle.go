package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kozmoai/site/pkg/kz/logger"
)

// Startable represents a component that can be started.
type Startable interface {
	Start(context.Context) error
}

// Stoppable represents a component that can be stopped.
type Stoppable interface {
	Stop(context.Context) error
}

// RouteRegistrar represents a component that registers HTTP routes.
type RouteRegistrar interface {
	RegisterRoutes(chi.Router)
}

// Lifecycle holds the start/stop pipelines and route registrars discovered
// from a list of components.
type Lifecycle struct {
	starts     []func(context.Context) error
	stops      []func(context.Context) error
	registrars []RouteRegistrar
	log        logger.Logger
}

// Setup inspects each component for RouteRegistrar, Startable and Stoppable,
// preserving the order the components were given in.
func Setup(log logger.Logger, comps ...any) *Lifecycle {
	lc := &Lifecycle{log: log}
	for _, c := range comps {
		if rr, ok := c.(RouteRegistrar); ok {
			lc.registrars = append(lc.registrars, rr)
		}
		if s, ok := c.(Startable); ok {
			lc.starts = append(lc.starts, s.Start)
			// Keep stops index-aligned with starts for rollback.
			if st, ok := c.(Stoppable); ok {
				lc.stops = append(lc.stops, st.Stop)
			} else {
				lc.stops = append(lc.stops, func(context.Context) error { return nil })
			}
			continue
		}
		if st, ok := c.(Stoppable); ok {
			lc.stops = append(lc.stops, st.Stop)
			lc.starts = append(lc.starts, func(context.Context) error { return nil })
		}
	}
	return lc
}

// Start runs startup functions in order. If one fails, the components already
// started are stopped in reverse order and the error is returned. Routes are
// registered only after every component started.
func (lc *Lifecycle) Start(ctx context.Context, router chi.Router) error {
	for i, start := range lc.starts {
		if err := start(ctx); err != nil {
			lc.log.Errorf("error starting component #%d: %v", i, err)
			for j := i - 1; j >= 0; j-- {
				if rErr := lc.stops[j](context.Background()); rErr != nil {
					lc.log.Errorf("error stopping component #%d during rollback: %v", j, rErr)
				}
			}
			return err
		}
	}

	for _, rr := range lc.registrars {
		rr.RegisterRoutes(router)
	}

	return nil
}

// Stop stops all components in reverse order (LIFO).
func (lc *Lifecycle) Stop(ctx context.Context) {
	for i := len(lc.stops) - 1; i >= 0; i-- {
		if err := lc.stops[i](ctx); err != nil {
			lc.log.Errorf("error stopping component #%d: %v", i, err)
		}
	}
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully and stops all components.
func (lc *Lifecycle) Serve(ctx context.Context, handler http.Handler, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	lc.log.Infof("Server listening on %s", addr)

	select {
	case err := <-errCh:
		lc.Stop(context.Background())
		return err
	case <-ctx.Done():
	}

	lc.log.Info("Shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lc.log.Errorf("server shutdown failed: %v", err)
	}
	lc.Stop(shutdownCtx)
	return nil
}
