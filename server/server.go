// Package server wires the ldlf2dfa HTTP API to a listening address and a
// DFA cache backend.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dekarrin/ldlf2dfa/internal/config"
	"github.com/dekarrin/ldlf2dfa/internal/store"
	"github.com/dekarrin/ldlf2dfa/server/api"
)

// unauthDelay is how long the auth middleware pauses before sending an
// HTTP-401 for a missing or invalid bearer token, to deprioritize
// failed-auth traffic. Other error responses are not delayed.
const unauthDelay = 1 * time.Second

// Server serves the ldlf2dfa HTTP API over a listening socket, backed by a
// store.Store of compiled DFAs and registered accounts.
type Server struct {
	addr    string
	handler http.Handler
	backend *store.Store
}

// New opens the DFA cache named in cfg and builds a Server ready to listen.
// The caller is responsible for calling Close once the server is done.
func New(cfg config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	backend, err := store.Open(cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("server: open cache: %w", err)
	}

	a := api.API{
		Backend:         backend,
		UnauthDelay:     unauthDelay,
		Secret:          []byte(cfg.TokenSecret),
		DefaultAlphabet: cfg.DefaultAlphabet,
	}

	mux := http.NewServeMux()
	mux.Handle(api.PathPrefix+"/", http.StripPrefix(api.PathPrefix, a.Router()))

	return &Server{
		addr:    cfg.ListenAddress,
		handler: mux,
		backend: backend,
	}, nil
}

// ListenAndServe blocks serving the API until ctx is cancelled or an
// unrecoverable error occurs.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:    s.addr,
		Handler: s.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

// Close releases the server's underlying cache connection.
func (s *Server) Close() error {
	return s.backend.Close()
}
