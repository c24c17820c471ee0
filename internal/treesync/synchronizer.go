// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package treesync keeps the in-memory category tree in step with the
// document store. The whole tree is persisted as a single document
// (trees/categories); mutated nodes are additionally mirrored as
// per-node documents in the categories collection.
//
// The policy is local-first: a mutation always lands in the in-memory
// snapshot immediately, the remote write happens after a debounce quiet
// period, and a remote failure is logged without rolling anything back.
package treesync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"bibtree/internal/docstore"
	"bibtree/internal/models"
	"bibtree/internal/registry"
)

const (
	// treeDocID is the id of the whole-tree document in the trees
	// collection.
	treeDocID = "categories"

	// DefaultQuietPeriod is how long mutations must stay quiet before the
	// coalesced tree write fires.
	DefaultQuietPeriod = 1000 * time.Millisecond

	// saveTimeout bounds a single remote write issued by the debouncer.
	saveTimeout = 10 * time.Second
)

// treeDoc is the wire shape of the whole-tree document.
type treeDoc struct {
	Categories []models.Category `json:"categories"`
}

// Synchronizer owns the current tree snapshot and its persistence.
type Synchronizer struct {
	store    docstore.Store
	registry *registry.Registry
	debounce *Debouncer

	mu       sync.RWMutex
	snapshot []models.Category
}

// New returns a Synchronizer with an empty snapshot. Call LoadAll before
// serving traffic.
func New(store docstore.Store, reg *registry.Registry, quiet time.Duration) *Synchronizer {
	return &Synchronizer{
		store:    store,
		registry: reg,
		debounce: NewDebouncer(quiet),
		snapshot: []models.Category{},
	}
}

// Snapshot returns the current tree. Callers must treat it as read-only;
// every mutation goes through the tree package and Replace.
func (s *Synchronizer) Snapshot() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Replace installs a new snapshot and schedules the debounced remote
// write. The local swap always succeeds; the remote write is
// fire-and-forget and logs its own failures.
//
// Replace discards whatever snapshot was current. Mutations derived from
// a previous read must go through Update instead, or concurrent requests
// can overwrite each other's result.
func (s *Synchronizer) Replace(snapshot []models.Category) {
	snapshot = Sanitize(snapshot)

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.scheduleSave(snapshot)
}

// Update applies fn to the current snapshot and installs the result,
// holding the lock across the whole read-apply-install sequence so
// concurrent mutations compose instead of racing: each mutation's result
// is the input to the next. fn must be pure over its input, the way the
// tree package operations are. Returns the installed snapshot.
func (s *Synchronizer) Update(fn func([]models.Category) []models.Category) []models.Category {
	s.mu.Lock()
	snapshot := Sanitize(fn(s.snapshot))
	s.snapshot = snapshot
	s.mu.Unlock()

	s.scheduleSave(snapshot)
	return snapshot
}

// scheduleSave arranges the debounced whole-tree write for snapshot.
func (s *Synchronizer) scheduleSave(snapshot []models.Category) {
	s.debounce.Schedule(func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := s.SaveAll(ctx, snapshot); err != nil {
			slog.Error("debounced tree save failed", "error", err)
		}
	})
}

// LoadAll reads the whole-tree document, migrates any legacy inline
// literature records into registry references, and installs the result
// as the current snapshot. An absent document yields an empty tree.
func (s *Synchronizer) LoadAll(ctx context.Context) error {
	data, err := s.store.Get(ctx, docstore.CollectionTrees, treeDocID)
	if errors.Is(err, docstore.ErrNotFound) {
		s.mu.Lock()
		s.snapshot = []models.Category{}
		s.mu.Unlock()
		slog.Info("no stored tree, starting empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load tree: %w", err)
	}

	var doc treeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode tree: %w", err)
	}

	snapshot, migrated, err := s.migrateInline(ctx, doc.Categories)
	if err != nil {
		return fmt.Errorf("migrate inline literature: %w", err)
	}
	snapshot = Sanitize(snapshot)

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	if migrated {
		// Persist the normalized form right away so the legacy shape is
		// rewritten exactly once.
		if err := s.SaveAll(ctx, snapshot); err != nil {
			slog.Error("persist migrated tree failed", "error", err)
		} else {
			slog.Info("migrated inline literature to registry references")
		}
	}

	return nil
}

// SaveAll sanitizes and writes the whole tree as one document.
func (s *Synchronizer) SaveAll(ctx context.Context, snapshot []models.Category) error {
	doc := treeDoc{Categories: Sanitize(snapshot)}
	if err := s.store.Set(ctx, docstore.CollectionTrees, treeDocID, doc); err != nil {
		return fmt.Errorf("save tree: %w", err)
	}
	return nil
}

// SaveNode mirrors a single node as its own document in the categories
// collection. Failures are logged, never returned: the local snapshot is
// authoritative and the whole-tree save will catch up.
func (s *Synchronizer) SaveNode(ctx context.Context, cat models.Category) {
	sanitized := Sanitize([]models.Category{cat})
	if err := s.store.Set(ctx, docstore.CollectionCategories, cat.ID, sanitized[0]); err != nil {
		slog.Error("save category document failed", "id", cat.ID, "error", err)
	}
}

// DeleteNode removes a node's mirror document.
func (s *Synchronizer) DeleteNode(ctx context.Context, id string) {
	if err := s.store.Delete(ctx, docstore.CollectionCategories, id); err != nil {
		slog.Error("delete category document failed", "id", id, "error", err)
	}
}

// Flush forces any pending debounced write to run now. Called at
// shutdown.
func (s *Synchronizer) Flush() {
	s.debounce.Flush()
}

// Close stops the debouncer after flushing pending work.
func (s *Synchronizer) Close() {
	s.debounce.Flush()
	s.debounce.Stop()
}

// migrateInline walks the tree converting legacy embedded literature
// records into registry references, deduplicated by (title, url).
func (s *Synchronizer) migrateInline(ctx context.Context, cats []models.Category) ([]models.Category, bool, error) {
	if s.registry == nil {
		return cats, false, nil
	}

	migrated := false
	out := make([]models.Category, len(cats))
	for i, c := range cats {
		if len(c.Literature) > 0 {
			for _, lit := range c.Literature {
				id, err := s.registry.EnsureID(ctx, lit)
				if err != nil {
					return nil, false, err
				}
				if !slices.Contains(c.LiteratureIDs, id) {
					c.LiteratureIDs = append(append([]string{}, c.LiteratureIDs...), id)
				}
			}
			c.Literature = nil
			migrated = true
		}

		if len(c.Children) > 0 {
			children, childMigrated, err := s.migrateInline(ctx, c.Children)
			if err != nil {
				return nil, false, err
			}
			c.Children = children
			migrated = migrated || childMigrated
		}

		out[i] = c
	}
	return out, migrated, nil
}

// Sanitize normalizes a snapshot for storage: nil children become empty
// slices, unset colors get the default, and the legacy inline literature
// field is cleared. The document store cannot represent "undefined", so
// everything optional is either a concrete value, null, or omitted.
func Sanitize(cats []models.Category) []models.Category {
	out := make([]models.Category, len(cats))
	for i, c := range cats {
		if c.Color == "" {
			c.Color = models.DefaultColor
		}
		c.Literature = nil
		c.Children = Sanitize(c.Children)
		out[i] = c
	}
	return out
}
