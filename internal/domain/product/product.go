package product

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("product: not found")
	ErrInvalidID       = errors.New("product: id is required")
	ErrInvalidName     = errors.New("product: name is required")
	ErrInvalidPrice    = errors.New("product: price must be zero or greater")
	ErrInvalidQuantity = errors.New("product: quantity must be zero or greater")
)

// Product is a catalog entry. Quantity is the current sellable stock.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	Quantity  int
	UpdatedAt time.Time
}

func New(id, name string, price decimal.Decimal, quantity int) (*Product, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	if name == "" {
		return nil, ErrInvalidName
	}
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	return &Product{
		ID:        id,
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

// Selection is a requested (product, quantity) pair in an incoming order.
type Selection struct {
	ID       string
	Quantity int
}
