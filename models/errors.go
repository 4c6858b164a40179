package models

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductExists is returned when registering a ProductID twice.
	ErrProductExists = errors.New("ProductID already exists")
	// ErrNoteNotFound is returned when a note is not found.
	ErrNoteNotFound = errors.New("note not found")
	// ErrLengthMismatch is returned when a note request pairs a different
	// number of product ids and quantities.
	ErrLengthMismatch = errors.New("the length of ProductIDs and Quantities must match")
	// ErrInvalidPatch is returned for product updates outside the allow-list.
	ErrInvalidPatch = errors.New("invalid product update")
	// ErrInvalidAmount is returned for quantities and prices that are not
	// bounded JSON numbers.
	ErrInvalidAmount = errors.New("invalid amount")
)

// ProductNotFoundError names the product a note referenced but the catalog
// does not hold.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with ID %s not found", e.ProductID)
}

func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}
