package customer

import "context"

type Repository interface {
	Create(ctx context.Context, c *Customer) (*Customer, error)
	FindByID(ctx context.Context, id string) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
}
