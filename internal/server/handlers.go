package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/roehl/interlog/internal/identity"
	"github.com/roehl/interlog/internal/ledger"
)

// recordRequest is the write-surface payload. It carries only the action
// text; identity and timestamp are assigned by the system.
type recordRequest struct {
	Action string `json:"action"`
}

// handleRecord appends an interaction for the authenticated caller.
func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	key := bearerToken(r)
	p, ok := s.keyring.Resolve(key)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or unknown API key")
		return
	}

	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "body must be JSON with an \"action\" field")
		return
	}

	ctx := identity.WithPrincipal(r.Context(), p)
	rec, err := s.ledger.Record(ctx, req.Action)
	if err != nil {
		slog.Error("record failed", "actor", p.Actor, "error", err)
		writeError(w, http.StatusInternalServerError, "APPEND_FAILED", "could not append interaction")
		return
	}

	if s.notifier != nil {
		s.notifier.Publish(rec)
	}

	writeJSON(w, http.StatusCreated, map[string]any{"index": rec.Index})
}

// handleCount returns the current sequence length.
func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	count, err := s.ledger.Count(r.Context())
	if err != nil {
		slog.Error("count failed", "error", err)
		writeError(w, http.StatusInternalServerError, "READ_FAILED", "could not read count")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": count})
}

// handleGet returns one interaction by index.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request, rawIndex string) {
	index, err := strconv.ParseInt(rawIndex, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "index must be an integer")
		return
	}

	rec, err := s.ledger.Get(r.Context(), index)
	if err != nil {
		if ledger.IsIndexOutOfRange(err) {
			writeError(w, http.StatusNotFound, string(ledger.ErrCodeIndexOutOfRange), err.Error())
			return
		}
		slog.Error("get failed", "index", index, "error", err)
		writeError(w, http.StatusInternalServerError, "READ_FAILED", "could not read interaction")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// handleList returns interactions filtered by actor.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	actor := r.URL.Query().Get("actor")
	if actor == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "actor query parameter is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	recs, err := s.ledger.ListByActor(r.Context(), actor, limit)
	if err != nil {
		slog.Error("list failed", "actor", actor, "error", err)
		writeError(w, http.StatusInternalServerError, "READ_FAILED", "could not list interactions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"interactions": recs})
}

// bearerToken extracts the API key from the Authorization header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, prefix))
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encoding failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	writeJSON(w, status, body)
}
