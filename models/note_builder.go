package models

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type ProductLookup interface {
	GetByID(ctx context.Context, id string) (*Product, error)
}

type NoteSaver interface {
	Kind() NoteKind
	Save(ctx context.Context, note *Note) error
}

// NoteBuilder turns a note request into a priced note document.
type NoteBuilder struct {
	catalog ProductLookup
	notes   NoteSaver
	now     func() time.Time
}

func NewNoteBuilder(catalog ProductLookup, notes NoteSaver) *NoteBuilder {
	return &NoteBuilder{
		catalog: catalog,
		notes:   notes,
		now:     time.Now,
	}
}

// Build resolves every product and computes line and note totals. It stops
// at the first unknown product and never writes to a store.
func (b *NoteBuilder) Build(ctx context.Context, noteID string, productIDs []string, quantities []decimal.Decimal) (*Note, error) {
	if len(productIDs) != len(quantities) {
		return nil, ErrLengthMismatch
	}
	for i, q := range quantities {
		if err := ValidateAmount(q); err != nil {
			return nil, fmt.Errorf("Quantities[%d]: %w", i, err)
		}
	}

	createdAt := b.now().UTC()
	lines := make([]Line, 0, len(productIDs))
	totalQuantity := decimal.Zero
	totalPrice := decimal.Zero

	for i, id := range productIDs {
		product, err := b.catalog.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrProductNotFound) {
				return nil, &ProductNotFoundError{ProductID: id}
			}
			return nil, fmt.Errorf("looking up product %s: %w", id, err)
		}

		line, err := newLine(*product, quantities[i], createdAt)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
		totalQuantity = totalQuantity.Add(line.Quantity)
		totalPrice = totalPrice.Add(line.TotalPrice)
	}

	return &Note{
		NoteID:        noteID,
		Kind:          b.notes.Kind(),
		Products:      lines,
		TotalQuantity: totalQuantity,
		TotalPrice:    totalPrice,
		CreatedAt:     createdAt,
	}, nil
}

// Create builds the note and persists it with a single write.
func (b *NoteBuilder) Create(ctx context.Context, noteID string, productIDs []string, quantities []decimal.Decimal) (*Note, error) {
	note, err := b.Build(ctx, noteID, productIDs, quantities)
	if err != nil {
		return nil, err
	}
	if err := b.notes.Save(ctx, note); err != nil {
		return nil, fmt.Errorf("saving %s note %s: %w", note.Kind, note.NoteID, err)
	}
	return note, nil
}

func newLine(product Product, quantity decimal.Decimal, at time.Time) (Line, error) {
	hash, err := snapshotHash(product)
	if err != nil {
		return Line{}, err
	}
	unitPrice := product.LastPrice
	product.Quantity = quantity
	return Line{
		Product:      product,
		UnitPrice:    unitPrice,
		TotalPrice:   quantity.Mul(unitPrice),
		SnapshotAt:   at,
		SnapshotHash: hash,
	}, nil
}

// snapshotHash fingerprints the catalog record as it was read.
func snapshotHash(product Product) (string, error) {
	raw, err := json.Marshal(product)
	if err != nil {
		return "", fmt.Errorf("hashing product %s: %w", product.ProductID, err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
