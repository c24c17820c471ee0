// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process document store used by tests and available as a
// throwaway backend for local experiments. Safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	docs  map[string]map[string]json.RawMessage // collection -> id -> doc
	order map[string][]string                   // collection -> ids in insertion order
}

// NewMemory returns an empty in-memory document store.
func NewMemory() *Memory {
	return &Memory{
		docs:  make(map[string]map[string]json.RawMessage),
		order: make(map[string][]string),
	}
}

// Get retrieves a single document. Returns ErrNotFound if absent.
func (s *Memory) Get(_ context.Context, collection, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

// Set writes a document, overwriting any existing one under the same key.
func (s *Memory) Set(_ context.Context, collection, id string, doc any) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %s/%s: %w", collection, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.docs[collection] == nil {
		s.docs[collection] = make(map[string]json.RawMessage)
	}
	if _, existed := s.docs[collection][id]; !existed {
		s.order[collection] = append(s.order[collection], id)
	}
	s.docs[collection][id] = payload
	return nil
}

// Delete removes a document. Deleting an absent document is not an error.
func (s *Memory) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[collection][id]; !ok {
		return nil
	}
	delete(s.docs[collection], id)

	ids := s.order[collection]
	for i, existing := range ids {
		if existing == id {
			s.order[collection] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// ListAll returns every document in a collection in insertion order.
func (s *Memory) ListAll(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []Document
	for _, id := range s.order[collection] {
		docs = append(docs, Document{ID: id, Data: s.docs[collection][id]})
	}
	return docs, nil
}
