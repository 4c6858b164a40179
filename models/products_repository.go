package models

import (
	"context"
	"errors"
)

type ProductsRepository struct {
	table Table[Product]
}

func NewProductsRepository(table Table[Product]) *ProductsRepository {
	return &ProductsRepository{
		table: table,
	}
}

// Create registers a new product. It fails with ErrProductExists when the
// ProductID is already in the catalog.
func (r *ProductsRepository) Create(ctx context.Context, product Product) error {
	if err := r.table.PutIfAbsent(ctx, product.ProductID, product); err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return ErrProductExists
		}
		return err
	}
	return nil
}

func (r *ProductsRepository) GetAll(ctx context.Context) ([]Product, error) {
	return r.table.Scan(ctx)
}

func (r *ProductsRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	product, err := r.table.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other store error
	}
	return product, nil
}

func (r *ProductsRepository) Update(ctx context.Context, id string, patch ProductPatch) (*Product, error) {
	var updated Product
	err := r.table.Update(ctx, id, func(p *Product) error {
		patch.Apply(p)
		updated = *p
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// Delete checks the product exists before removing it. The check and the
// delete are separate store calls.
func (r *ProductsRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.table.Delete(ctx, id)
}
