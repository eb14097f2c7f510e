package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"storefront-api/internal/client"
	"storefront-api/internal/config"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"
	"storefront-api/internal/service"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := client.OpenDatabase(&config.Database{
		Driver:       "sqlite",
		URL:          ":memory:",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, client.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	customerRepo := repository.NewCustomerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	shipmentRepo := repository.NewShipmentRepository(db)

	return NewServer(zap.NewNop(), config.Metrics{Enabled: true, Service: "storefront-test"}, Services{
		Customer: service.NewCustomerService(db, customerRepo, orderRepo),
		Catalog:  service.NewCatalogService(db, categoryRepo, productRepo, orderRepo),
		Order:    service.NewOrderService(db, orderRepo, customerRepo, productRepo),
		Payment:  service.NewPaymentService(db, paymentRepo, orderRepo),
		Shipment: service.NewShipmentService(db, shipmentRepo, orderRepo, nil),
	})
}

func do(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHealthAndRequestID(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))
}

func TestErrorMapping(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"missing order", http.MethodGet, "/api/orders/42", nil, http.StatusNotFound},
		{"bad id", http.MethodGet, "/api/orders/abc", nil, http.StatusBadRequest},
		{"empty customer", http.MethodPost, "/api/customers", dto.CreateCustomerRequest{}, http.StatusBadRequest},
		{"unknown state filter", http.MethodGet, "/api/orders?state=lost", nil, http.StatusBadRequest},
		{"order for unknown customer", http.MethodPost, "/api/orders", dto.CreateOrderRequest{CustomerID: 9}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)

			var body dto.ErrorResponse
			decode(t, rec, &body)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestOrderLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/customers", dto.CreateCustomerRequest{Name: "Lin", Email: "lin@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var customer model.Customer
	decode(t, rec, &customer)

	rec = do(t, srv, http.MethodPost, "/api/products", map[string]interface{}{"name": "Teapot", "price": "12.50"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var product model.Product
	decode(t, rec, &product)

	rec = do(t, srv, http.MethodPost, "/api/orders", dto.CreateOrderRequest{CustomerID: customer.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order model.Order
	decode(t, rec, &order)

	rec = do(t, srv, http.MethodPost, fmt.Sprintf("/api/orders/%d/lines", order.ID), dto.AddLineRequest{ProductID: product.ID, Quantity: 2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var added dto.LineResponse
	decode(t, rec, &added)
	assert.Equal(t, "25.00", added.Order.Total.StringFixed(2))

	rec = do(t, srv, http.MethodPatch, fmt.Sprintf("/api/order-lines/%d", added.Line.ID), dto.UpdateLineRequest{Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/payments", map[string]interface{}{"order_id": order.ID, "amount": "10", "method": "cash"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var payment model.Payment
	decode(t, rec, &payment)
	assert.Equal(t, model.PaymentPending, payment.State)

	rec = do(t, srv, http.MethodPost, "/api/payments", map[string]interface{}{"order_id": order.ID, "amount": "15.01", "method": "card"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, srv, http.MethodGet, fmt.Sprintf("/api/orders/%d/balance", order.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var balance model.Balance
	decode(t, rec, &balance)
	assert.Equal(t, "15.00", balance.Remaining.StringFixed(2))

	rec = do(t, srv, http.MethodPost, "/api/shipments", dto.CreateShipmentRequest{OrderID: order.ID, Address: "3 Quay St"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var shipment model.Shipment
	decode(t, rec, &shipment)

	rec = do(t, srv, http.MethodPut, fmt.Sprintf("/api/shipments/%d/state", shipment.ID), dto.StateRequest{State: "in_transit"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &shipment)
	assert.NotNil(t, shipment.ShippedAt)

	rec = do(t, srv, http.MethodGet, fmt.Sprintf("/api/orders/%d/shipment", order.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodPut, fmt.Sprintf("/api/orders/%d/state", order.ID), dto.StateRequest{State: "delivered"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, srv, http.MethodDelete, fmt.Sprintf("/api/orders/%d", order.ID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, srv, http.MethodDelete, fmt.Sprintf("/api/customers/%d", customer.ID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, srv, http.MethodDelete, fmt.Sprintf("/api/payments/%d", payment.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var ok dto.DeleteResponse
	decode(t, rec, &ok)
	assert.True(t, ok.OK)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	do(t, srv, http.MethodGet, "/api/health", nil)

	rec := do(t, srv, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
