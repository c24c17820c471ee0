// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON API handlers for the bibtree server.
// Handlers are grouped on the API struct and receive their dependencies
// through it. Mutations follow the local-first policy: the in-memory
// snapshot is updated and returned immediately, remote persistence is
// debounced and fire-and-forget.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"bibtree/internal/registry"
	"bibtree/internal/session"
	"bibtree/internal/treesync"
)

// API groups all JSON API handlers and their dependencies.
// sessions and adminHash may be nil when authentication is disabled.
type API struct {
	sync      *treesync.Synchronizer
	registry  *registry.Registry
	sessions  *session.Store
	adminHash []byte
}

// NewAPI creates a new API handler group.
func NewAPI(sync *treesync.Synchronizer, reg *registry.Registry, sessions *session.Store, adminHash []byte) *API {
	return &API{
		sync:      sync,
		registry:  reg,
		sessions:  sessions,
		adminHash: adminHash,
	}
}

// Health reports liveness.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondJSON writes v as a JSON response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondError writes a JSON error body with the given status.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON parses the request body into v. Unknown fields are allowed;
// older clients still send legacy fields.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
