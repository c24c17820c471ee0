// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package docstore defines the remote document store contract: JSON
// documents addressed by collection and id, with full-overwrite writes.
// Implementations exist for Postgres, Valkey, and an in-memory store used
// in tests.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned by Get when no document exists under the given
// collection and id.
var ErrNotFound = errors.New("docstore: document not found")

// Document is one stored document together with its id.
type Document struct {
	ID   string
	Data json.RawMessage
}

// Store is the document store contract. Values passed to Set must be
// JSON-serializable; Set performs a full overwrite of any existing
// document. ListAll returns documents in insertion order.
type Store interface {
	Get(ctx context.Context, collection, id string) (json.RawMessage, error)
	Set(ctx context.Context, collection, id string, doc any) error
	Delete(ctx context.Context, collection, id string) error
	ListAll(ctx context.Context, collection string) ([]Document, error)
}

// Collection names used by bibtree.
const (
	CollectionTrees      = "trees"
	CollectionCategories = "categories"
	CollectionLiterature = "literature"
)
