package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"payout_dashboard/internal/handlers"
	"payout_dashboard/internal/transport/auth"
)

type Server struct {
	httpServer *http.Server
}

func NewServer(port string, h *handlers.Handlers, tokenRepo auth.TokenRepo) *Server {
	mux := http.NewServeMux()

	if h != nil {
		guard := auth.TokenMiddleware(tokenRepo)

		mux.HandleFunc("/health", h.Health)
		mux.Handle("/upload", guard(http.HandlerFunc(h.Upload)))
		mux.Handle("/payouts", guard(http.HandlerFunc(h.Payouts)))
		mux.Handle("/payouts/chart", guard(http.HandlerFunc(h.Chart)))
		mux.Handle("/uploads", guard(http.HandlerFunc(h.UploadHistory)))
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shCtx)
	case err := <-errCh:
		return err
	}
}
