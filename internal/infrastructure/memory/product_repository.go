package memory

import (
	"context"
	"sync"
	"time"

	domain "gomart/internal/domain/product"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	byName   map[string]string
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[string]*domain.Product),
		byName:   make(map[string]string),
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	_ = ctx
	if p == nil || p.ID == "" {
		return nil, domain.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[p.ID] = p.Clone()
	r.byName[p.Name] = p.ID
	return p.Clone(), nil
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p.Clone(), nil
}

// FindAllByID returns the catalog entries for whichever requested ids exist;
// absent ids are silently skipped, matching the collaborator contract.
func (r *ProductRepository) FindAllByID(ctx context.Context, selections []domain.Selection) ([]domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, 0, len(selections))
	seen := make(map[string]bool, len(selections))
	for _, sel := range selections {
		if seen[sel.ID] {
			continue
		}
		seen[sel.ID] = true
		if p, ok := r.products[sel.ID]; ok {
			out = append(out, *p.Clone())
		}
	}
	return out, nil
}

func (r *ProductRepository) UpdateQuantity(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		stored, ok := r.products[p.ID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		stored.Quantity = p.Quantity
		stored.Name = p.Name
		stored.Price = p.Price
		stored.UpdatedAt = now
		out = append(out, *stored.Clone())
	}
	return out, nil
}
