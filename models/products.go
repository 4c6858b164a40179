package models

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// ProductID is its key and never changes after registration.
type Product struct {
	ProductID   string          `json:"ProductID"`
	Name        string          `json:"Name"`
	Description string          `json:"Description"`
	Category    string          `json:"Category"`
	Quantity    decimal.Decimal `json:"Quantity"`
	LastPrice   decimal.Decimal `json:"LastPrice"`
}

// NewProduct returns a product with empty stock and no price yet.
func NewProduct(id, name, description, category string) Product {
	return Product{
		ProductID:   id,
		Name:        name,
		Description: description,
		Category:    category,
		Quantity:    decimal.Zero,
		LastPrice:   decimal.Zero,
	}
}

// ProductPatch lists the mutable product fields. Nil means unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	Category    *string
	Quantity    *decimal.Decimal
	LastPrice   *decimal.Decimal
}

// ParseProductPatch validates a raw JSON object against the allow-list of
// mutable fields.
func ParseProductPatch(fields map[string]json.RawMessage) (ProductPatch, error) {
	var patch ProductPatch
	if len(fields) == 0 {
		return patch, fmt.Errorf("%w: no fields to update", ErrInvalidPatch)
	}

	// sorted so the reported error does not depend on map order
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := fields[key]
		var err error
		switch key {
		case "Name":
			patch.Name, err = parseString(key, raw)
		case "Description":
			patch.Description, err = parseString(key, raw)
		case "Category":
			patch.Category, err = parseString(key, raw)
		case "Quantity":
			patch.Quantity, err = parseAmount(key, raw)
		case "LastPrice":
			patch.LastPrice, err = parseAmount(key, raw)
		case "ProductID":
			err = fmt.Errorf("%w: ProductID is immutable", ErrInvalidPatch)
		default:
			err = fmt.Errorf("%w: unknown field %q", ErrInvalidPatch, key)
		}
		if err != nil {
			return ProductPatch{}, err
		}
	}
	return patch, nil
}

// Apply copies the set fields onto p.
func (patch ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.LastPrice != nil {
		p.LastPrice = *patch.LastPrice
	}
}

func parseString(key string, raw json.RawMessage) (*string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %s must be a string", ErrInvalidPatch, key)
	}
	return &s, nil
}

func parseAmount(key string, raw json.RawMessage) (*decimal.Decimal, error) {
	d, err := ParseAmount(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPatch, key, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidPatch, key)
	}
	return &d, nil
}
