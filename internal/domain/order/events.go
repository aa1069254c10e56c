package order

import "time"

// CreatedEvent is emitted after an order has been persisted and stock
// decremented. Delivery is best-effort; the checkout flow never fails on it.
type CreatedEvent struct {
	OrderID    string     `json:"order_id"`
	CustomerID string     `json:"customer_id"`
	Items      []LineItem `json:"order_products"`
	OccurredAt time.Time  `json:"occurred_at"`
}

func (CreatedEvent) EventName() string { return "order.created" }

func NewCreatedEvent(o *Order) CreatedEvent {
	return CreatedEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Items:      append([]LineItem(nil), o.Items...),
		OccurredAt: time.Now().UTC(),
	}
}
