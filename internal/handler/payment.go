package handler

import (
	"net/http"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreatePaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	payment, err := h.paymentService.CreatePayment(ctx, service.PaymentInput{
		OrderID:        req.OrderID,
		Amount:         req.Amount,
		Method:         model.PaymentMethod(req.Method),
		Note:           req.Note,
		TransactionRef: req.TransactionRef,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	payment, err := h.paymentService.GetPayment(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdatePaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	payment, err := h.paymentService.UpdatePayment(ctx, id, req.Patch())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) ChangeState(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.StateRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	payment, err := h.paymentService.ChangePaymentState(ctx, id, model.PaymentState(req.State))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.paymentService.DeletePayment(ctx, id); err != nil {
		return err
	}

	return deleted(c)
}
