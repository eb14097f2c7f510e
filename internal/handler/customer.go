package handler

import (
	"net/http"
	"storefront-api/internal/dto"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type CustomerHandler struct {
	customerService service.CustomerService
}

func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

func (h *CustomerHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateCustomerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	customer, err := h.customerService.CreateCustomer(ctx, service.CustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	customers, err := h.customerService.ListCustomers(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	customer, err := h.customerService.GetCustomer(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateCustomerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	customer, err := h.customerService.UpdateCustomer(ctx, id, req.Patch())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.customerService.DeleteCustomer(ctx, id); err != nil {
		return err
	}

	return deleted(c)
}
