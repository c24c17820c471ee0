// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package registry manages the flat collection of literature records,
// persisted one document per record in the literature collection.
// Records live independently of the category tree: deleting one never
// touches category references, so readers must tolerate dangling ids.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"bibtree/internal/docstore"
	"bibtree/internal/models"
)

// Registry provides CRUD over literature records.
type Registry struct {
	store docstore.Store
}

// New returns a Registry backed by the given document store.
func New(store docstore.Store) *Registry {
	return &Registry{store: store}
}

// Add assigns an id to the record and persists it. The incoming record's
// ID field is ignored.
func (r *Registry) Add(ctx context.Context, lit models.Literature) (models.Literature, error) {
	lit.ID = uuid.NewString()
	if err := r.store.Set(ctx, docstore.CollectionLiterature, lit.ID, lit); err != nil {
		return models.Literature{}, fmt.Errorf("add literature: %w", err)
	}
	return lit, nil
}

// Delete removes a record. References to it from categories are left
// dangling on purpose; exports render them as "Unknown".
func (r *Registry) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, docstore.CollectionLiterature, id); err != nil {
		return fmt.Errorf("delete literature: %w", err)
	}
	return nil
}

// List reloads all records from the store, in insertion order.
func (r *Registry) List(ctx context.Context) ([]models.Literature, error) {
	docs, err := r.store.ListAll(ctx, docstore.CollectionLiterature)
	if err != nil {
		return nil, fmt.Errorf("list literature: %w", err)
	}

	items := make([]models.Literature, 0, len(docs))
	for _, d := range docs {
		var lit models.Literature
		if err := json.Unmarshal(d.Data, &lit); err != nil {
			return nil, fmt.Errorf("decode literature %s: %w", d.ID, err)
		}
		if lit.ID == "" {
			lit.ID = d.ID
		}
		items = append(items, lit)
	}
	return items, nil
}

// FindByID retrieves a single record. Returns found=false when absent.
func (r *Registry) FindByID(ctx context.Context, id string) (models.Literature, bool, error) {
	data, err := r.store.Get(ctx, docstore.CollectionLiterature, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.Literature{}, false, nil
	}
	if err != nil {
		return models.Literature{}, false, fmt.Errorf("find literature %s: %w", id, err)
	}

	var lit models.Literature
	if err := json.Unmarshal(data, &lit); err != nil {
		return models.Literature{}, false, fmt.Errorf("decode literature %s: %w", id, err)
	}
	if lit.ID == "" {
		lit.ID = id
	}
	return lit, true, nil
}

// EnsureID returns the id of a registry record describing the same work
// as lit (matched by title and url), creating the record when none
// exists. Used by the legacy inline-literature migration.
func (r *Registry) EnsureID(ctx context.Context, lit models.Literature) (string, error) {
	existing, err := r.List(ctx)
	if err != nil {
		return "", err
	}
	for _, e := range existing {
		if e.SameWork(lit) {
			return e.ID, nil
		}
	}

	created, err := r.Add(ctx, lit)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}
