package order

import "context"

type Repository interface {
	// Create persists the order and its line items atomically and returns the
	// stored order, line items mirrored.
	Create(ctx context.Context, o *Order) (*Order, error)
	FindByID(ctx context.Context, id string) (*Order, error)
}
