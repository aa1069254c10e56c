package memory

import (
	"context"
	"sync"

	domain "gomart/internal/domain/customer"
)

type CustomerRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Customer
	byEmail map[string]string
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		byID:    make(map[string]*domain.Customer),
		byEmail: make(map[string]string),
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	_ = ctx
	if c == nil || c.ID == "" {
		return nil, domain.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[c.ID] = c.Clone()
	r.byEmail[c.Email] = c.ID
	return c.Clone(), nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c.Clone(), nil
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c.Clone(), nil
}
