// README: API gateway; holds module services and serves the gin router.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"skycab/internal/infra"
	"skycab/internal/modules/aiusage"
	"skycab/internal/modules/booking"
	"skycab/internal/modules/chat"
	"skycab/internal/modules/fare"
)

type ServerDeps struct {
	Fare      *fare.Service
	Booking   *booking.Service
	Chat      *chat.Service
	AI        *aiusage.Service
	AITimeout time.Duration
	Verifier  infra.TokenVerifier
	Logger    *logrus.Logger
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	return &Server{deps: deps}
}

// Run serves addr until ctx is done, then drains for up to shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.deps.Logger.WithField("addr", addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.deps.Logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
