package httppresentation

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gomart/internal/application/catalog"
	"gomart/internal/application/checkout"
	"gomart/internal/application/customers"
	domcustomer "gomart/internal/domain/customer"
	domorder "gomart/internal/domain/order"
	domproduct "gomart/internal/domain/product"
	"gomart/internal/observability"
	"gomart/internal/observability/logctx"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

const componentHTTPHandler = "http_server"

type Handler struct {
	checkoutUC *checkout.CreateOrderUseCase
	orders     *checkout.Service
	customers  *customers.Service
	catalog    *catalog.Service
	log        observability.Logger
	tel        observability.Observability
}

func NewHandler(
	checkoutUC *checkout.CreateOrderUseCase,
	orders *checkout.Service,
	customerSvc *customers.Service,
	catalogSvc *catalog.Service,
	tel observability.Observability,
) *Handler {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Handler{
		checkoutUC: checkoutUC,
		orders:     orders,
		customers:  customerSvc,
		catalog:    catalogSvc,
		log:        tel.Logger().With(observability.F("component", componentHTTPHandler)),
		tel:        tel,
	}
}

// Router wires every route through the middleware chain:
// trace -> request logger -> HTTP metrics -> access log -> handler.
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(
		h.withTrace,
		h.withRequestLogger,
		h.withHTTPMetrics,
		h.withAccessLog,
	)

	r.HandleFunc("/customers", h.handleCreateCustomer).Methods(http.MethodPost)
	r.HandleFunc("/products", h.handleCreateProduct).Methods(http.MethodPost)
	r.HandleFunc("/orders", h.handleCreateOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id}", h.handleGetOrder).Methods(http.MethodGet)
	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)

	return r
}

type createCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type customerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	created, err := h.customers.Create(r.Context(), req.Name, req.Email)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, customerResponse{
		ID:        created.ID,
		Name:      created.Name,
		Email:     created.Email,
		CreatedAt: created.CreatedAt,
	})
}

type createProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type productResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	created, err := h.catalog.Create(r.Context(), req.Name, req.Price, req.Quantity)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, productResponse{
		ID:       created.ID,
		Name:     created.Name,
		Price:    created.Price,
		Quantity: created.Quantity,
	})
}

type orderItemRequest struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type createOrderRequest struct {
	CustomerID string             `json:"customer_id"`
	Products   []orderItemRequest `json:"products"`
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	selections := make([]domproduct.Selection, 0, len(req.Products))
	for _, p := range req.Products {
		selections = append(selections, domproduct.Selection{ID: p.ID, Quantity: p.Quantity})
	}

	placed, err := h.checkoutUC.Execute(r.Context(), checkout.CreateOrderInput{
		CustomerID: req.CustomerID,
		Products:   selections,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, placed)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	found, err := h.orders.Get(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, found)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, checkout.ErrCustomerNotFound),
		errors.Is(err, checkout.ErrProductNotFound),
		errors.Is(err, domorder.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, checkout.ErrOutOfStock),
		errors.Is(err, customers.ErrEmailTaken),
		errors.Is(err, catalog.ErrNameTaken):
		status = http.StatusConflict
	case errors.Is(err, domcustomer.ErrInvalidName),
		errors.Is(err, domcustomer.ErrInvalidEmail),
		errors.Is(err, domproduct.ErrInvalidName),
		errors.Is(err, domproduct.ErrInvalidPrice),
		errors.Is(err, domproduct.ErrInvalidQuantity):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logctx.FromOr(r.Context(), h.log).Error("request_failed",
			observability.F("error", err.Error()),
		)
	}
	writeError(w, status, err)
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
