// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	// docKeyPrefix namespaces document hashes in Valkey.
	docKeyPrefix = "doc:"
	// orderKeySuffix namespaces the per-collection insertion-order list.
	orderKeySuffix = ":order"
)

// Valkey stores each collection as a hash (id -> JSON document) plus a
// list tracking insertion order, so ListAll stays deterministic. Hash
// field order in Valkey is unspecified, hence the companion list.
type Valkey struct {
	client *redis.Client
}

// NewValkey returns a Valkey-backed document store.
func NewValkey(client *redis.Client) *Valkey {
	return &Valkey{client: client}
}

func docKey(collection string) string   { return docKeyPrefix + collection }
func orderKey(collection string) string { return docKeyPrefix + collection + orderKeySuffix }

// Get retrieves a single document. Returns ErrNotFound if absent.
func (s *Valkey) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	data, err := s.client.HGet(ctx, docKey(collection), id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s/%s: %w", collection, id, err)
	}
	return data, nil
}

// Set writes a document, overwriting any existing one under the same key.
func (s *Valkey) Set(ctx context.Context, collection, id string, doc any) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %s/%s: %w", collection, id, err)
	}

	existed, err := s.client.HExists(ctx, docKey(collection), id).Result()
	if err != nil {
		return fmt.Errorf("set document %s/%s: %w", collection, id, err)
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, docKey(collection), id, payload)
	if !existed {
		pipe.RPush(ctx, orderKey(collection), id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set document %s/%s: %w", collection, id, err)
	}
	return nil
}

// Delete removes a document. Deleting an absent document is not an error.
func (s *Valkey) Delete(ctx context.Context, collection, id string) error {
	pipe := s.client.TxPipeline()
	pipe.HDel(ctx, docKey(collection), id)
	pipe.LRem(ctx, orderKey(collection), 0, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete document %s/%s: %w", collection, id, err)
	}
	return nil
}

// ListAll returns every document in a collection in insertion order.
func (s *Valkey) ListAll(ctx context.Context, collection string) ([]Document, error) {
	ids, err := s.client.LRange(ctx, orderKey(collection), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list documents %s: %w", collection, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	values, err := s.client.HMGet(ctx, docKey(collection), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("list documents %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(ids))
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			// Order list and hash briefly out of step; skip the hole.
			continue
		}
		docs = append(docs, Document{ID: ids[i], Data: json.RawMessage(str)})
	}
	return docs, nil
}
