package audit

import (
	"context"

	domorder "gomart/internal/domain/order"
	domoutbox "gomart/internal/domain/outbox"
	"gomart/internal/observability"
)

const componentAudit = "audit_worker"

// Worker writes one audit log line per placed order and keeps the
// orders_created_total counter. It is a bus subscriber, fully decoupled from
// the checkout flow.
type Worker struct {
	subscriber domoutbox.Subscriber
	log        observability.Logger
	created    observability.Counter
}

func New(subscriber domoutbox.Subscriber, tel observability.Observability) *Worker {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Worker{
		subscriber: subscriber,
		log:        tel.Logger().With(observability.F("component", componentAudit)),
		created:    tel.Metrics().Counter(observability.MOrdersCreated),
	}
}

func (w *Worker) Start() {
	w.subscriber.Subscribe(domorder.CreatedEvent{}.EventName(), w.handleOrderCreated)
}

func (w *Worker) handleOrderCreated(ctx context.Context, e domoutbox.Event) error {
	_ = ctx
	evt, ok := e.(domorder.CreatedEvent)
	if !ok {
		return nil
	}

	w.created.Add(1)
	w.log.Info("order_placed",
		observability.F("order_id", evt.OrderID),
		observability.F("customer_id", evt.CustomerID),
		observability.F("items", len(evt.Items)),
	)
	return nil
}
