package models

import (
	"context"
	"errors"
)

var (
	// ErrItemNotFound is returned by a Table when no item exists for a key.
	ErrItemNotFound = errors.New("item not found")
	// ErrConditionFailed is returned by PutIfAbsent when the key is taken.
	ErrConditionFailed = errors.New("conditional write failed")
)

// Table is a key-value collection of documents addressed by a primary key.
// Each operation is atomic for a single item only.
type Table[T any] interface {
	Get(ctx context.Context, key string) (*T, error)
	Put(ctx context.Context, key string, item T) error
	PutIfAbsent(ctx context.Context, key string, item T) error
	Update(ctx context.Context, key string, fn func(item *T) error) error
	Delete(ctx context.Context, key string) error
	Scan(ctx context.Context) ([]T, error)
}

// Collection names.
const (
	ProductsTable      = "products"
	InboundNotesTable  = "inbound_notes"
	OutboundNotesTable = "outbound_notes"
)

// Tables groups the three collections the service works with.
type Tables struct {
	Products      Table[Product]
	InboundNotes  Table[Note]
	OutboundNotes Table[Note]
}

// Notes returns the collection holding notes of the given kind.
func (t Tables) Notes(kind NoteKind) Table[Note] {
	if kind == OutboundNote {
		return t.OutboundNotes
	}
	return t.InboundNotes
}
