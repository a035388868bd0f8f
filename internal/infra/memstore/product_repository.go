// Package memstore provides concurrency-safe in-memory repositories. The
// ledger is a mock stand-in for a real distributed ledger, so process memory
// is the system of record; swapping in real persistence means implementing
// the repository interfaces elsewhere.
package memstore

import (
	"context"
	"sync"

	"agritrace/internal/domain/entity"
	"agritrace/internal/domain/repository"
)

// productRecord pairs a stored product with the mutex that serializes all
// access to it. Per-product locking keeps the append-only log and the
// finalization lock correct under concurrent writers without serializing
// unrelated products behind each other.
type productRecord struct {
	mu      sync.Mutex
	product *entity.Product
}

type productRepository struct {
	mu       sync.RWMutex
	products map[string]*productRecord
	order    []string
}

// NewProductRepository creates an empty in-memory product store.
func NewProductRepository() repository.ProductRepository {
	return &productRepository{
		products: make(map[string]*productRecord),
	}
}

// Create stores a deep copy of the product under its id.
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ProductID]; exists {
		return repository.ErrDuplicateProduct
	}

	r.products[product.ProductID] = &productRecord{product: product.Clone()}
	r.order = append(r.order, product.ProductID)

	return nil
}

// FindByID returns a deep copy of the stored product.
func (r *productRepository) FindByID(ctx context.Context, productID string) (*entity.Product, error) {
	record, err := r.record(productID)
	if err != nil {
		return nil, err
	}

	record.mu.Lock()
	defer record.mu.Unlock()

	return record.product.Clone(), nil
}

// FindAll returns deep copies of all products in insertion order.
func (r *productRepository) FindAll(ctx context.Context) ([]*entity.Product, error) {
	r.mu.RLock()
	records := make([]*productRecord, 0, len(r.order))
	for _, id := range r.order {
		records = append(records, r.products[id])
	}
	r.mu.RUnlock()

	products := make([]*entity.Product, 0, len(records))
	for _, record := range records {
		record.mu.Lock()
		products = append(products, record.product.Clone())
		record.mu.Unlock()
	}

	return products, nil
}

// Update applies mutate under the product's own lock. The mutation runs on a
// working copy; the store only advances to it when mutate succeeds, so a
// failed mutation leaves no partial state behind.
func (r *productRepository) Update(ctx context.Context, productID string, mutate func(*entity.Product) error) (*entity.Product, error) {
	record, err := r.record(productID)
	if err != nil {
		return nil, err
	}

	record.mu.Lock()
	defer record.mu.Unlock()

	working := record.product.Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}

	record.product = working

	return working.Clone(), nil
}

func (r *productRepository) record(productID string) (*productRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.products[productID]
	if !exists {
		return nil, repository.ErrProductNotFound
	}

	return record, nil
}
