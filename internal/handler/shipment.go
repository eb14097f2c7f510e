package handler

import (
	"net/http"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type ShipmentHandler struct {
	shipmentService service.ShipmentService
}

func NewShipmentHandler(shipmentService service.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{
		shipmentService: shipmentService,
	}
}

func (h *ShipmentHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateShipmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	shipment, err := h.shipmentService.CreateShipment(ctx, service.ShipmentInput{
		OrderID: req.OrderID,
		Address: req.Address,
		Carrier: req.Carrier,
		Cost:    req.Cost,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, shipment)
}

func (h *ShipmentHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	shipment, err := h.shipmentService.GetShipment(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, shipment)
}

func (h *ShipmentHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateShipmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	shipment, err := h.shipmentService.UpdateShipment(ctx, id, req.Patch())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, shipment)
}

func (h *ShipmentHandler) ChangeState(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.StateRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	shipment, err := h.shipmentService.ChangeShipmentState(ctx, id, model.ShipmentState(req.State))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, shipment)
}

func (h *ShipmentHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.shipmentService.DeleteShipment(ctx, id); err != nil {
		return err
	}

	return deleted(c)
}
