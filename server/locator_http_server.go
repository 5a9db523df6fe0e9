package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

type LocatorHttpServer struct {
	router    *Router
	muxRouter *mux.Router
	addr      string
	logger    log.Logger
}

func NewLocatorHttpServer(router *Router, muxRouter *mux.Router, addr string, logger log.Logger) *LocatorHttpServer {
	return &LocatorHttpServer{
		router:    router,
		muxRouter: muxRouter,
		addr:      addr,
		logger:    log.With(logger, "component", "LocatorHttpServer"),
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *LocatorHttpServer) Start(ctx context.Context) error {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		level.Info(s.logger).Log("msg", "starting server", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err, ok := <-errc:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	level.Info(s.logger).Log("msg", "shutting down the server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	level.Info(s.logger).Log("msg", "server exiting")
	return nil
}
