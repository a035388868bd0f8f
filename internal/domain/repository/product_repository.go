// Package repository defines the interfaces for the ledger's storage layer.
// The running service backs these with concurrency-safe in-memory stores;
// nothing in the domain layer depends on that choice.
package repository

import (
	"context"

	"agritrace/internal/domain/entity"
	"agritrace/internal/errors"
)

// Sentinel errors for product storage.
var (
	// ErrProductNotFound is returned when no product exists for a given id.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateProduct is returned when creating a product whose id is taken.
	ErrDuplicateProduct = errors.New("product already exists")
)

// ProductRepository is the single source of truth for product existence and
// history. Implementations must serialize Update calls per product id so the
// append-only transaction log and the finalization lock hold under
// concurrent writers.
type ProductRepository interface {
	// Create stores a new product. Returns ErrDuplicateProduct if the id is taken.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID returns a deep copy of the product, or ErrProductNotFound.
	FindByID(ctx context.Context, productID string) (*entity.Product, error)

	// FindAll returns deep copies of all products in insertion order.
	FindAll(ctx context.Context) ([]*entity.Product, error)

	// Update applies mutate to the stored product while holding that
	// product's write lock, then returns a deep copy of the result. If
	// mutate returns an error the stored product is left untouched.
	// Returns ErrProductNotFound if the id is unknown.
	Update(ctx context.Context, productID string, mutate func(*entity.Product) error) (*entity.Product, error)
}
