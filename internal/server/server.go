package server

import (
	"context"
	"net/http"
	"storefront-api/internal/config"
	"storefront-api/internal/handler"
	"storefront-api/internal/logger"
	"storefront-api/internal/metrics"
	mid "storefront-api/internal/middleware"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Services struct {
	Customer service.CustomerService
	Catalog  service.CatalogService
	Order    service.OrderService
	Payment  service.PaymentService
	Shipment service.ShipmentService
}

type Server struct {
	echo            *echo.Echo
	metricsCfg      config.Metrics
	customerHandler *handler.CustomerHandler
	catalogHandler  *handler.CatalogHandler
	orderHandler    *handler.OrderHandler
	paymentHandler  *handler.PaymentHandler
	shipmentHandler *handler.ShipmentHandler
}

func NewServer(log *zap.Logger, metricsCfg config.Metrics, services Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Use(middleware.Recover())
	e.Use(mid.RequestID(log))
	e.Use(logger.Middleware(log))
	if metricsCfg.Enabled {
		e.Use(metrics.Middleware(metricsCfg.Service))
	}
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		metricsCfg:      metricsCfg,
		customerHandler: handler.NewCustomerHandler(services.Customer),
		catalogHandler:  handler.NewCatalogHandler(services.Catalog),
		orderHandler:    handler.NewOrderHandler(services.Order, services.Payment, services.Shipment),
		paymentHandler:  handler.NewPaymentHandler(services.Payment),
		shipmentHandler: handler.NewShipmentHandler(services.Shipment),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	if s.metricsCfg.Enabled {
		s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- customers --------
	customers := api.Group("/customers")
	customers.POST("", s.customerHandler.Create)
	customers.GET("", s.customerHandler.List)
	customers.GET("/:id", s.customerHandler.Get)
	customers.PATCH("/:id", s.customerHandler.Update)
	customers.DELETE("/:id", s.customerHandler.Delete)

	// -------- catalog --------
	categories := api.Group("/categories")
	categories.POST("", s.catalogHandler.CreateCategory)
	categories.GET("", s.catalogHandler.ListCategories)
	categories.GET("/:id", s.catalogHandler.GetCategory)
	categories.PATCH("/:id", s.catalogHandler.UpdateCategory)
	categories.DELETE("/:id", s.catalogHandler.DeleteCategory)

	products := api.Group("/products")
	products.POST("", s.catalogHandler.CreateProduct)
	products.GET("", s.catalogHandler.ListProducts)
	products.GET("/:id", s.catalogHandler.GetProduct)
	products.PATCH("/:id", s.catalogHandler.UpdateProduct)
	products.DELETE("/:id", s.catalogHandler.DeleteProduct)

	// -------- orders --------
	orders := api.Group("/orders")
	orders.POST("", s.orderHandler.Create)
	orders.GET("", s.orderHandler.List)
	orders.GET("/:id", s.orderHandler.Get)
	orders.PATCH("/:id", s.orderHandler.Update)
	orders.DELETE("/:id", s.orderHandler.Delete)
	orders.PUT("/:id/state", s.orderHandler.ChangeState)
	orders.POST("/:id/lines", s.orderHandler.AddLine)
	orders.GET("/:id/payments", s.orderHandler.ListPayments)
	orders.GET("/:id/balance", s.orderHandler.Balance)
	orders.GET("/:id/shipment", s.orderHandler.Shipment)

	lines := api.Group("/order-lines")
	lines.PATCH("/:id", s.orderHandler.UpdateLine)
	lines.DELETE("/:id", s.orderHandler.RemoveLine)

	// -------- payments --------
	payments := api.Group("/payments")
	payments.POST("", s.paymentHandler.Create)
	payments.GET("/:id", s.paymentHandler.Get)
	payments.PATCH("/:id", s.paymentHandler.Update)
	payments.DELETE("/:id", s.paymentHandler.Delete)
	payments.PUT("/:id/state", s.paymentHandler.ChangeState)

	// -------- shipments --------
	shipments := api.Group("/shipments")
	shipments.POST("", s.shipmentHandler.Create)
	shipments.GET("/:id", s.shipmentHandler.Get)
	shipments.PATCH("/:id", s.shipmentHandler.Update)
	shipments.DELETE("/:id", s.shipmentHandler.Delete)
	shipments.PUT("/:id/state", s.shipmentHandler.ChangeState)
}

// ServeHTTP lets tests drive the router without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
