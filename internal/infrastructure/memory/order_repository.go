package memory

import (
	"context"
	"sync"

	domain "gomart/internal/domain/order"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]*domain.Order),
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	_ = ctx
	if o == nil || o.ID == "" {
		return nil, domain.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[o.ID] = o.Clone()
	return o.Clone(), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o.Clone(), nil
}
