// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bibtree/internal/models"
)

// literatureResponse is the wire shape of the registry listing.
type literatureResponse struct {
	Literature []models.Literature `json:"literature"`
}

// LiteratureList returns all registry records in insertion order.
func (a *API) LiteratureList(w http.ResponseWriter, r *http.Request) {
	items, err := a.registry.List(r.Context())
	if err != nil {
		slog.Error("list literature failed", "error", err)
		respondError(w, http.StatusInternalServerError, "could not load literature")
		return
	}
	respondJSON(w, http.StatusOK, literatureResponse{Literature: items})
}

// LiteratureAdd creates a registry record. The id is assigned server-side;
// any id in the request body is ignored.
func (a *API) LiteratureAdd(w http.ResponseWriter, r *http.Request) {
	var req models.Literature
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := validateLiterature(req.Title, req.Author, req.Date, req.URL); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := a.registry.Add(r.Context(), req)
	if err != nil {
		slog.Error("add literature failed", "error", err)
		respondError(w, http.StatusInternalServerError, "could not save literature")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// LiteratureDelete removes a registry record. Category references to the
// id are left in place; exports render them as "Unknown".
func (a *API) LiteratureDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := a.registry.Delete(r.Context(), id); err != nil {
		slog.Error("delete literature failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "could not delete literature")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
