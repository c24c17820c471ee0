// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bibtree/internal/models"
	"bibtree/internal/tree"
)

// treeResponse is the wire shape of every endpoint that returns the tree.
type treeResponse struct {
	Categories []models.Category `json:"categories"`
}

// Tree returns the current snapshot.
func (a *API) Tree(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, treeResponse{Categories: a.sync.Snapshot()})
}

// CategoryCreate inserts a new category. A null parentCategoryId creates a
// root node; an unknown parent leaves the tree unchanged and still returns
// 200, since the client may be racing a concurrent delete.
func (a *API) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req models.Category
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := validateCategory(req.Name); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Color == "" {
		req.Color = models.DefaultColor
	}
	req.Children = []models.Category{}
	req.Literature = nil

	found := true
	snapshot := a.sync.Update(func(cur []models.Category) []models.Category {
		if req.ParentCategoryID == nil {
			return tree.InsertRoot(cur, req)
		}
		next, ok := tree.InsertChild(cur, *req.ParentCategoryID, req)
		found = ok
		return next
	})
	if !found {
		slog.Warn("insert under unknown parent ignored", "parent", *req.ParentCategoryID, "name", req.Name)
		respondJSON(w, http.StatusOK, treeResponse{Categories: snapshot})
		return
	}

	a.sync.SaveNode(r.Context(), req)
	respondJSON(w, http.StatusOK, treeResponse{Categories: snapshot})
}

// CategoryUpdate replaces a node's name and description. Children and
// attached literature are preserved.
func (a *API) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.Category
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := validateCategory(req.Name); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	var (
		updated models.Category
		found   bool
	)
	snapshot := a.sync.Update(func(cur []models.Category) []models.Category {
		current, ok := tree.FindByID(cur, id)
		if !ok {
			return cur
		}
		current.Name = req.Name
		current.Description = req.Description
		updated, found = current, true
		return tree.UpdateByID(cur, current)
	})
	if !found {
		slog.Warn("update of unknown category ignored", "id", id)
		respondJSON(w, http.StatusOK, treeResponse{Categories: snapshot})
		return
	}

	a.sync.SaveNode(r.Context(), updated)
	respondJSON(w, http.StatusOK, treeResponse{Categories: snapshot})
}

// colorRequest carries the new color for a subtree.
type colorRequest struct {
	Color string `json:"color"`
}

// CategoryColor sets a node's color and copies it down to every
// descendant.
func (a *API) CategoryColor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req colorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := validateColor(req.Color); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	snapshot := a.sync.Update(func(cur []models.Category) []models.Category {
		return tree.PropagateColor(cur, id, req.Color)
	})

	if updated, ok := tree.FindByID(snapshot, id); ok {
		a.sync.SaveNode(r.Context(), updated)
	}
	respondJSON(w, http.StatusOK, treeResponse{Categories: snapshot})
}

// CategoryDelete removes a node and its whole subtree. Deleting an absent
// id is a no-op, not an error.
func (a *API) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	snapshot := a.sync.Update(func(cur []models.Category) []models.Category {
		return tree.RemoveByID(cur, id)
	})
	a.sync.DeleteNode(r.Context(), id)
	respondJSON(w, http.StatusOK, treeResponse{Categories: snapshot})
}

// attachRequest names the registry record to attach to a category.
type attachRequest struct {
	LiteratureID string `json:"literatureId"`
}

// LiteratureAttach adds a registry reference to a category. The reference
// is stored by id only; attaching an already attached id is a no-op.
func (a *API) LiteratureAttach(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req attachRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.LiteratureID == "" {
		respondError(w, http.StatusBadRequest, "literatureId is required.")
		return
	}

	var (
		updated models.Category
		found   bool
		changed bool
	)
	snapshot := a.sync.Update(func(cur []models.Category) []models.Category {
		current, ok := tree.FindByID(cur, id)
		if !ok {
			return cur
		}
		found = true
		if slices.Contains(current.LiteratureIDs, req.LiteratureID) {
			return cur
		}
		current.LiteratureIDs = append(append([]string{}, current.LiteratureIDs...), req.LiteratureID)
		updated, changed = current, true
		return tree.UpdateByID(cur, current)
	})
	if !found {
		slog.Warn("attach to unknown category ignored", "id", id)
	}
	if changed {
		a.sync.SaveNode(r.Context(), updated)
	}
	respondJSON(w, http.StatusOK, treeResponse{Categories: snapshot})
}

// LiteratureDetach removes a registry reference from a category. The
// registry record itself is untouched.
func (a *API) LiteratureDetach(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	litID := chi.URLParam(r, "litID")

	var (
		updated models.Category
		found   bool
		changed bool
	)
	snapshot := a.sync.Update(func(cur []models.Category) []models.Category {
		current, ok := tree.FindByID(cur, id)
		if !ok {
			return cur
		}
		found = true
		idx := slices.Index(current.LiteratureIDs, litID)
		if idx < 0 {
			return cur
		}
		ids := append([]string{}, current.LiteratureIDs...)
		current.LiteratureIDs = append(ids[:idx], ids[idx+1:]...)
		updated, changed = current, true
		return tree.UpdateByID(cur, current)
	})
	if !found {
		slog.Warn("detach from unknown category ignored", "id", id)
	}
	if changed {
		a.sync.SaveNode(r.Context(), updated)
	}
	respondJSON(w, http.StatusOK, treeResponse{Categories: snapshot})
}
