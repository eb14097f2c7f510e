package handler

import (
	"net/http"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/service"
	"strconv"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService    service.OrderService
	paymentService  service.PaymentService
	shipmentService service.ShipmentService
}

func NewOrderHandler(
	orderService service.OrderService,
	paymentService service.PaymentService,
	shipmentService service.ShipmentService,
) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		paymentService:  paymentService,
		shipmentService: shipmentService,
	}
}

func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.CreateOrder(ctx, req.CustomerID, req.DeliveryMethod, req.Notes)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var filter model.OrderFilter
	if raw := c.QueryParam("customer_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid customer_id")
		}
		customerID := uint(id)
		filter.CustomerID = &customerID
	}
	if raw := c.QueryParam("state"); raw != "" {
		state := model.OrderState(raw)
		filter.State = &state
	}

	orders, err := h.orderService.ListOrders(ctx, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderService.GetOrder(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.UpdateOrderFields(ctx, id, req.Patch())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ChangeState(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.StateRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.ChangeOrderState(ctx, id, model.OrderState(req.State))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.orderService.DeleteOrder(ctx, id); err != nil {
		return err
	}

	return deleted(c)
}

// -------- lines --------

func (h *OrderHandler) AddLine(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.AddLineRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	line, order, err := h.orderService.AddLine(ctx, orderID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.LineResponse{Line: line, Order: order})
}

func (h *OrderHandler) UpdateLine(c echo.Context) error {
	ctx := c.Request().Context()

	lineID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateLineRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	line, order, err := h.orderService.UpdateLineQuantity(ctx, lineID, req.Quantity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.LineResponse{Line: line, Order: order})
}

func (h *OrderHandler) RemoveLine(c echo.Context) error {
	ctx := c.Request().Context()

	lineID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderService.RemoveLine(ctx, lineID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

// -------- order sub-resources --------

func (h *OrderHandler) ListPayments(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	payments, err := h.paymentService.ListPayments(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, payments)
}

func (h *OrderHandler) Balance(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	balance, err := h.paymentService.Balance(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, balance)
}

func (h *OrderHandler) Shipment(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	shipment, err := h.shipmentService.GetShipmentByOrder(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, shipment)
}
