package checkout

import (
	"context"
	"errors"
	"time"

	"gomart/internal/domain/customer"
	"gomart/internal/domain/order"
	"gomart/internal/domain/outbox"
	"gomart/internal/domain/product"
	"gomart/internal/observability"
	"gomart/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName        = "checkout-service"
	useCaseCreateOrder = "checkout.create_order"
	spanPrefix         = "UC."
	publishPeer        = "outbox"
	publishEndpoint    = "order.created"
	publishTimeout     = 300 * time.Millisecond
)

// CreateOrderUseCase coordinates the order-placement workflow across the
// customer, product and order stores.
type CreateOrderUseCase struct {
	customers customer.Repository
	products  product.Repository
	orders    order.Repository
	idGen     IDGenerator
	publisher outbox.Publisher
	tel       observability.Observability

	log          observability.Logger
	reqCounter   observability.Counter
	durHistogram observability.Histogram
	extCounter   observability.Counter
	extHistogram observability.Histogram
}

// NewCreateOrderUseCase wires the collaborators required to execute the flow.
// The publisher may be nil when eventing is not configured.
func NewCreateOrderUseCase(
	customers customer.Repository,
	products product.Repository,
	orders order.Repository,
	idGen IDGenerator,
	publisher outbox.Publisher,
	tel observability.Observability,
) *CreateOrderUseCase {
	if tel == nil {
		tel = observability.Nop()
	}
	metrics := tel.Metrics()
	return &CreateOrderUseCase{
		customers:    customers,
		products:     products,
		orders:       orders,
		idGen:        idGen,
		publisher:    publisher,
		tel:          tel,
		log:          tel.Logger().With(observability.F("service", serviceName)),
		reqCounter:   metrics.Counter(observability.MUsecaseRequests),
		durHistogram: metrics.Histogram(observability.MUsecaseDuration),
		extCounter:   metrics.Counter(observability.MExternalRequests),
		extHistogram: metrics.Histogram(observability.MExternalRequestDuration),
	}
}

type CreateOrderInput struct {
	CustomerID string
	Products   []product.Selection
}

// Execute runs the order-placement workflow:
//
//	resolve customer -> resolve products -> validate -> persist order ->
//	recompute and persist decremented stock.
//
// Any validation failure aborts before persistence; no order is created and
// no stock is touched. A stock-update failure after the order was persisted
// propagates to the caller with the order left in place: there is no
// compensation here, and no locking guards two racing checkouts from
// overselling the last units.
func (uc *CreateOrderUseCase) Execute(ctx context.Context, input CreateOrderInput) (_ *order.Order, err error) {
	logger := logctx.FromOr(ctx, uc.log).With(observability.F("use_case", useCaseCreateOrder))

	ctx, span := uc.tel.Tracer().Start(ctx, spanPrefix+"CreateOrder",
		attribute.String("use_case", useCaseCreateOrder),
		attribute.String("order.customer_id", input.CustomerID),
		attribute.Int("order.requested_items", len(input.Products)),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"
	var orderID string
	var publishErr error

	defer func() {
		lat := time.Since(start).Seconds()

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, statusText)
		} else {
			span.SetStatus(codes.Ok, statusText)
		}
		span.End()

		uc.reqCounter.Add(1,
			observability.L("use_case", useCaseCreateOrder),
			observability.L("outcome", outcome),
		)
		uc.durHistogram.Observe(lat,
			observability.L("use_case", useCaseCreateOrder),
		)

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("latency_seconds", lat),
		}
		if orderID != "" {
			fields = append(fields, observability.F("order_id", orderID))
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
		if publishErr != nil {
			fields = append(fields, observability.F("event_publish_error", publishErr.Error()))
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}

		logger.Info("use_case_done", fields...)
	}()

	// Step 1: the customer must exist. Store errors other than a plain miss
	// propagate unchanged.
	if _, err = uc.customers.FindByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			outcome, statusText = "error", "CUSTOMER_NOT_FOUND"
			return nil, ErrCustomerNotFound
		}
		outcome, statusText = "error", "CUSTOMER_LOOKUP_FAILED"
		return nil, err
	}

	// Step 2: one batch fetch for every requested id.
	catalog, err := uc.products.FindAllByID(ctx, input.Products)
	if err != nil {
		outcome, statusText = "error", "PRODUCT_LOOKUP_FAILED"
		return nil, err
	}
	entries := make(map[string]*product.Product, len(catalog))
	for i := range catalog {
		entries[catalog[i].ID] = &catalog[i]
	}

	// Step 3: per-item validation in request order; the first failure aborts
	// the whole operation before anything is persisted.
	items := make([]order.LineItem, 0, len(input.Products))
	for _, requested := range input.Products {
		entry, ok := entries[requested.ID]
		if !ok {
			outcome, statusText = "error", "PRODUCT_NOT_FOUND"
			return nil, ErrProductNotFound
		}
		// The zero-stock condition is redundant when the requested quantity
		// is positive, but it is a distinct rule of the contract.
		if entry.Quantity < requested.Quantity || entry.Quantity == 0 {
			outcome, statusText = "error", "OUT_OF_STOCK"
			return nil, ErrOutOfStock
		}
		items = append(items, order.LineItem{
			ProductID: requested.ID,
			Price:     entry.Price,
			Quantity:  requested.Quantity,
		})
	}

	entity, err := order.New(uc.idGen.NewID(), input.CustomerID, items)
	if err != nil {
		outcome, statusText = "error", "ORDER_CONSTRUCTION_FAILED"
		return nil, err
	}

	// Step 4: persist the order and its line items in one call.
	persisted, err := uc.orders.Create(ctx, entity)
	if err != nil {
		outcome, statusText = "error", "ORDER_PERSIST_FAILED"
		return nil, err
	}
	orderID = persisted.ID
	span.SetAttributes(attribute.String("order.id", persisted.ID))

	// Steps 5-6: recompute stock from the persisted line items against the
	// originally fetched catalog entries, then write the batch back.
	updates := make([]product.Product, 0, len(persisted.Items))
	for _, item := range persisted.Items {
		entry, ok := entries[item.ProductID]
		if !ok {
			continue
		}
		update := *entry
		update.Quantity = entry.Quantity - item.Quantity
		updates = append(updates, update)
	}
	if _, err = uc.products.UpdateQuantity(ctx, updates); err != nil {
		// The order stays persisted; see the workflow comment above.
		outcome, statusText = "error", "STOCK_UPDATE_FAILED"
		return nil, err
	}

	if uc.publisher != nil {
		publishErr = uc.publishCreated(ctx, persisted)
		if publishErr != nil {
			statusText = "EVENT_PUBLISH_FAILED"
		}
	}

	span.AddEvent("order.created",
		trace.WithAttributes(attribute.String("order.id", persisted.ID)),
	)

	return persisted, nil
}

func (uc *CreateOrderUseCase) publishCreated(ctx context.Context, o *order.Order) error {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	pubStart := time.Now()
	pubOutcome := "success"

	err := uc.publisher.Publish(pubCtx, order.NewCreatedEvent(o))
	if err != nil {
		pubOutcome = "error"
	} else if pubCtx.Err() != nil {
		pubOutcome = "canceled"
		err = pubCtx.Err()
	}

	uc.extCounter.Add(1,
		observability.L("peer", publishPeer),
		observability.L("endpoint", publishEndpoint),
		observability.L("outcome", pubOutcome),
	)
	uc.extHistogram.Observe(time.Since(pubStart).Seconds(),
		observability.L("peer", publishPeer),
		observability.L("endpoint", publishEndpoint),
	)
	return err
}
