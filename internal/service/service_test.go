package service

import (
	"context"
	"storefront-api/internal/client"
	"storefront-api/internal/config"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	customers CustomerService
	catalog   CatalogService
	orders    OrderService
	payments  PaymentService
	shipments ShipmentService
	clock     *fakeClock
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(time.Minute)
	return c.now
}

// newFixture wires every service against a fresh in-memory sqlite
// database. One connection keeps the memory database alive for the test.
func newFixture(t *testing.T) *fixture {
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

	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}

	return &fixture{
		db:        db,
		customers: NewCustomerService(db, customerRepo, orderRepo),
		catalog:   NewCatalogService(db, categoryRepo, productRepo, orderRepo),
		orders:    NewOrderService(db, orderRepo, customerRepo, productRepo),
		payments:  NewPaymentService(db, paymentRepo, orderRepo),
		shipments: NewShipmentService(db, shipmentRepo, orderRepo, clock.Now),
		clock:     clock,
	}
}

func (f *fixture) customer(t *testing.T, email string) *model.Customer {
	t.Helper()
	c, err := f.customers.CreateCustomer(context.Background(), CustomerInput{Name: "Ada Lovelace", Email: email})
	require.NoError(t, err)
	return c
}

func (f *fixture) product(t *testing.T, name, price string) *model.Product {
	t.Helper()
	p, err := f.catalog.CreateProduct(context.Background(), model.ProductInput{
		Name:              name,
		Price:             decimal.RequireFromString(price),
		AvailableQuantity: 100,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) order(t *testing.T) *model.Order {
	t.Helper()
	c := f.customer(t, "buyer@example.com")
	o, err := f.orders.CreateOrder(context.Background(), c.ID, nil, nil)
	require.NoError(t, err)
	return o
}

// orderWithTotal creates an order whose total equals price via one line.
func (f *fixture) orderWithTotal(t *testing.T, price string) *model.Order {
	t.Helper()
	o := f.order(t)
	p := f.product(t, "Widget", price)
	_, o, err := f.orders.AddLine(context.Background(), o.ID, p.ID, 1)
	require.NoError(t, err)
	return o
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
