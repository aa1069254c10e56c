package checkout

import (
	"context"
	"errors"

	"gomart/internal/domain/order"
)

// Service exposes read access to placed orders.
type Service struct {
	orders order.Repository
}

func NewService(orders order.Repository) *Service {
	return &Service{orders: orders}
}

func (s *Service) Get(ctx context.Context, id string) (*order.Order, error) {
	if id == "" {
		return nil, errors.New("checkout: order id is required")
	}
	return s.orders.FindByID(ctx, id)
}
