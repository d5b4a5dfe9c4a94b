// Package server exposes the interaction ledger over HTTP.
//
// Surfaces:
//   - POST /v1/interactions: record an interaction (authenticated)
//   - GET  /v1/interactions/count: current sequence length (public)
//   - GET  /v1/interactions/{index}: one interaction by index (public)
//   - GET  /v1/interactions?actor=X: actor-filtered listing (public)
//
// Writes require an API key from the keyring; the resolved principal is
// bound to the request context, so the recorded actor always comes from
// authentication and never from the request body.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/roehl/interlog/internal/identity"
	"github.com/roehl/interlog/internal/ledger"
	"github.com/roehl/interlog/internal/notify"
)

// Ledger is the read/write surface the server needs. Satisfied by both
// store.Store and ledger.Log.
type Ledger interface {
	Record(ctx context.Context, action string) (ledger.Interaction, error)
	Count(ctx context.Context) (int64, error)
	Get(ctx context.Context, index int64) (ledger.Interaction, error)
	ListByActor(ctx context.Context, actor string, limit int) ([]ledger.Interaction, error)
}

// Server is the HTTP front end for the ledger.
type Server struct {
	ledger   Ledger
	keyring  *identity.Keyring
	notifier *notify.Dispatcher // nil when notifications are disabled
	server   *http.Server
	listen   string
}

// New creates a server. The keyring is required: without it no caller
// identity can be established and the write surface cannot exist.
func New(l Ledger, kr *identity.Keyring, notifier *notify.Dispatcher, listen string) (*Server, error) {
	if kr == nil {
		return nil, fmt.Errorf("server requires a keyring to authenticate writers")
	}
	return &Server{
		ledger:   l,
		keyring:  kr,
		notifier: notifier,
		listen:   listen,
	}, nil
}

// Start runs the HTTP server until Stop is called or the listener fails.
// Blocks; returns http.ErrServerClosed after a clean shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.listen,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("http server listening", "addr", s.listen)
	return s.server.ListenAndServe()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Handler returns the route mux without binding a listener. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.routes()
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/interactions", s.handleInteractions)
	mux.HandleFunc("/v1/interactions/", s.handleInteractionPath)
	return mux
}

// handleInteractions serves the collection endpoint: POST records, GET lists.
func (s *Server) handleInteractions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleRecord(w, r)
	case http.MethodGet:
		s.handleList(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}

// handleInteractionPath serves /v1/interactions/count and /v1/interactions/{index}.
func (s *Server) handleInteractionPath(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/interactions/")
	if rest == "count" {
		s.handleCount(w, r)
		return
	}
	s.handleGet(w, r, rest)
}
