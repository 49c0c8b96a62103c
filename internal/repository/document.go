package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// errNoChange aborts a Document update without writing anything.
var errNoChange = errors.New("no change")

// Document is one keyed JSON document of a BlobStore, held in memory after Open.
//
// Every update decodes a private copy of the current value, applies the change,
// writes the complete document and only then swaps the cached bytes, so a failed
// write leaves the document as it was.
type Document[T any] struct {
	store BlobStore
	key   string

	mu  sync.RWMutex
	raw []byte
}

// OpenDocument reads the document stored under key. A missing key is an empty document.
func OpenDocument[T any](ctx context.Context, store BlobStore, key string) (*Document[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("blob store is not configured")
	}

	raw, err := store.Get(ctx, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}

	d := &Document[T]{store: store, key: key, raw: raw}
	if _, err := d.decode(); err != nil {
		return nil, err
	}
	return d, nil
}

// Key returns the blob key of the document.
func (d *Document[T]) Key() string {
	return d.key
}

// Read returns a copy of the current value.
func (d *Document[T]) Read() (T, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.decode()
}

// Update applies fn to a copy of the value and persists the result.
func (d *Document[T]) Update(ctx context.Context, fn func(v *T) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	v, err := d.decode()
	if err != nil {
		return err
	}
	if err := fn(&v); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", d.key, err)
	}
	if err := d.store.Put(ctx, d.key, data); err != nil {
		return fmt.Errorf("write %s: %w", d.key, err)
	}
	d.raw = data
	return nil
}

func (d *Document[T]) decode() (T, error) {
	var v T
	if len(d.raw) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(d.raw, &v); err != nil {
		return v, fmt.Errorf("unmarshal %s: %w", d.key, err)
	}
	return v, nil
}
