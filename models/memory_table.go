package models

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryTable keeps encoded documents in a map. Items are stored as JSON so
// callers never share memory with the table, like with a remote store.
type MemoryTable[T any] struct {
	mu    sync.RWMutex
	items map[string][]byte
	order []string
}

func NewMemoryTable[T any]() *MemoryTable[T] {
	return &MemoryTable[T]{items: make(map[string][]byte)}
}

// NewMemoryTables returns empty in-memory collections.
func NewMemoryTables() Tables {
	return Tables{
		Products:      NewMemoryTable[Product](),
		InboundNotes:  NewMemoryTable[Note](),
		OutboundNotes: NewMemoryTable[Note](),
	}
}

func (t *MemoryTable[T]) Get(_ context.Context, key string) (*T, error) {
	t.mu.RLock()
	raw, ok := t.items[key]
	t.mu.RUnlock()
	if !ok {
		return nil, ErrItemNotFound
	}
	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (t *MemoryTable[T]) Put(_ context.Context, key string, item T) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.set(key, raw)
	return nil
}

func (t *MemoryTable[T]) PutIfAbsent(_ context.Context, key string, item T) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.items[key]; ok {
		return ErrConditionFailed
	}
	t.set(key, raw)
	return nil
}

func (t *MemoryTable[T]) Update(_ context.Context, key string, fn func(item *T) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	raw, ok := t.items[key]
	if !ok {
		return ErrItemNotFound
	}
	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return err
	}
	if err := fn(&item); err != nil {
		return err
	}
	updated, err := json.Marshal(item)
	if err != nil {
		return err
	}
	t.items[key] = updated
	return nil
}

func (t *MemoryTable[T]) Delete(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.items[key]; !ok {
		return nil
	}
	delete(t.items, key)
	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

// Scan returns every item in insertion order.
func (t *MemoryTable[T]) Scan(_ context.Context) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	items := make([]T, 0, len(t.order))
	for _, key := range t.order {
		var item T
		if err := json.Unmarshal(t.items[key], &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// set must be called with mu held.
func (t *MemoryTable[T]) set(key string, raw []byte) {
	if _, ok := t.items[key]; !ok {
		t.order = append(t.order, key)
	}
	t.items[key] = raw
}
