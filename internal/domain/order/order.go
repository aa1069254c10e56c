package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("order: not found")
	ErrInvalidID         = errors.New("order: id is required")
	ErrInvalidCustomerID = errors.New("order: customer id is required")
)

// LineItem records one purchased product. Price is the catalog price at the
// time the order was placed, not a live reference.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type Order struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	Items      []LineItem `json:"order_products"`
	CreatedAt  time.Time  `json:"created_at"`
}

func New(id, customerID string, items []LineItem) (*Order, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	if customerID == "" {
		return nil, ErrInvalidCustomerID
	}
	return &Order{
		ID:         id,
		CustomerID: customerID,
		Items:      append([]LineItem(nil), items...),
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]LineItem(nil), o.Items...)
	return &clone
}

// Total is the sum of price*quantity over all line items.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
