package product

import "context"

type Repository interface {
	Create(ctx context.Context, p *Product) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	// FindAllByID returns whichever of the requested ids exist in the catalog;
	// missing ids are simply absent from the result.
	FindAllByID(ctx context.Context, selections []Selection) ([]Product, error)
	// UpdateQuantity persists new stock counts for the given products in one
	// batch and returns the updated entries.
	UpdateQuantity(ctx context.Context, products []Product) ([]Product, error)
}
