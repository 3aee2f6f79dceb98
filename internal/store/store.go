// Package store provides the flat key-value persistence port shared by all
// domain services. Values are whole JSON collections addressed by a logical
// collection key; every mutation is a whole-collection read-modify-write.
// The store assumes a single writer (one shop, one process).
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection keys used by the domain services.
const (
	KeyProducts      = "products"
	KeyOrders        = "orders"
	KeyDebts         = "debts"
	KeyDisbursements = "disbursements"
	KeyEvents        = "events"
)

// ErrNotConfigured indicates a service was handed a nil store.
var ErrNotConfigured = errors.New("store not configured")

// KV is the persistence port. Get returns (nil, nil) for an absent key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Load unmarshals the collection stored under key into out. An absent key
// leaves out untouched, so callers get their zero-value slice.
func Load(ctx context.Context, kv KV, key string, out any) error {
	if kv == nil {
		return ErrNotConfigured
	}
	data, err := kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Save marshals the collection and writes it back under key.
func Save(ctx context.Context, kv KV, key string, v any) error {
	if kv == nil {
		return ErrNotConfigured
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
