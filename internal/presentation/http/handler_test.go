package httppresentation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gomart/internal/application/catalog"
	"gomart/internal/application/checkout"
	"gomart/internal/application/customers"
	"gomart/internal/infrastructure/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqIDGen struct {
	prefix string
	n      int
}

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

func newTestServer() *httptest.Server {
	customerRepo := memory.NewCustomerRepository()
	productRepo := memory.NewProductRepository()
	orderRepo := memory.NewOrderRepository()

	uc := checkout.NewCreateOrderUseCase(customerRepo, productRepo, orderRepo, &seqIDGen{prefix: "order"}, nil, nil)
	handler := NewHandler(
		uc,
		checkout.NewService(orderRepo),
		customers.NewService(customerRepo, &seqIDGen{prefix: "customer"}, nil),
		catalog.NewService(productRepo, &seqIDGen{prefix: "product"}, nil),
		nil,
	)
	return httptest.NewServer(handler.Router())
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHandler_PlaceOrderFlow(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, customerBody := postJSON(t, srv.URL+"/customers",
		`{"name":"Ada Lovelace","email":"ada@example.com"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	customerID := customerBody["id"].(string)

	resp, productBody := postJSON(t, srv.URL+"/products",
		`{"name":"Widget","price":"9.99","quantity":5}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	productID := productBody["id"].(string)

	resp, orderBody := postJSON(t, srv.URL+"/orders", fmt.Sprintf(
		`{"customer_id":%q,"products":[{"id":%q,"quantity":3}]}`, customerID, productID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	assert.Equal(t, customerID, orderBody["customer_id"])
	items, ok := orderBody["order_products"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, productID, item["product_id"])
	assert.Equal(t, "9.99", item["price"])
	assert.Equal(t, float64(3), item["quantity"])

	getResp, err := http.Get(srv.URL + "/orders/" + orderBody["id"].(string))
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusOK, getResp.StatusCode)
}

func TestHandler_CreateOrder_UnknownCustomer(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, body := postJSON(t, srv.URL+"/orders",
		`{"customer_id":"C404","products":[{"id":"P1","quantity":1}]}`)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Customer does not exists", body["error"])
}

func TestHandler_CreateOrder_UnknownProduct(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, customerBody := postJSON(t, srv.URL+"/customers",
		`{"name":"Ada Lovelace","email":"ada@example.com"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := postJSON(t, srv.URL+"/orders", fmt.Sprintf(
		`{"customer_id":%q,"products":[{"id":"P404","quantity":1}]}`, customerBody["id"]))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Product not found!", body["error"])
}

func TestHandler_CreateOrder_OutOfStock(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, customerBody := postJSON(t, srv.URL+"/customers",
		`{"name":"Ada Lovelace","email":"ada@example.com"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, productBody := postJSON(t, srv.URL+"/products",
		`{"name":"Widget","price":"9.99","quantity":2}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := postJSON(t, srv.URL+"/orders", fmt.Sprintf(
		`{"customer_id":%q,"products":[{"id":%q,"quantity":3}]}`,
		customerBody["id"], productBody["id"]))

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Product Out of stock", body["error"])
}

func TestHandler_CreateCustomer_DuplicateEmail(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, _ := postJSON(t, srv.URL+"/customers",
		`{"name":"Ada Lovelace","email":"ada@example.com"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = postJSON(t, srv.URL+"/customers",
		`{"name":"Someone Else","email":"ada@example.com"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHandler_CreateProduct_InvalidPayload(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, _ := postJSON(t, srv.URL+"/products",
		`{"name":"Widget","price":"-1","quantity":5}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postJSON(t, srv.URL+"/products",
		`{"name":"Widget","price":"1.00","quantity":5,"bogus":true}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_GetOrder_NotFound(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/orders/O404")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_Health(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
