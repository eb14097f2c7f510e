package dto

import (
	"storefront-api/internal/model"

	"github.com/shopspring/decimal"
)

type CreateCustomerRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (r UpdateCustomerRequest) Patch() model.CustomerPatch {
	return model.CustomerPatch{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
	}
}

type CategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

func (r CategoryRequest) Patch() model.CategoryPatch {
	return model.CategoryPatch{
		Name:        r.Name,
		Description: r.Description,
		Active:      r.Active,
	}
}

type CreateProductRequest struct {
	Name              string          `json:"name"`
	Description       *string         `json:"description"`
	Price             decimal.Decimal `json:"price"`
	AvailableQuantity int             `json:"available_quantity"`
	Active            *bool           `json:"active"`
	ImageURL          *string         `json:"image_url"`
	CategoryIDs       []uint          `json:"category_ids"`
}

func (r CreateProductRequest) Input() model.ProductInput {
	return model.ProductInput{
		Name:              r.Name,
		Description:       r.Description,
		Price:             r.Price,
		AvailableQuantity: r.AvailableQuantity,
		Active:            r.Active,
		ImageURL:          r.ImageURL,
		CategoryIDs:       r.CategoryIDs,
	}
}

// UpdateProductRequest replaces the category set only when category_ids is
// present in the body; an empty array clears it.
type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	AvailableQuantity *int             `json:"available_quantity"`
	Active            *bool            `json:"active"`
	ImageURL          *string          `json:"image_url"`
	CategoryIDs       []uint           `json:"category_ids"`
}

func (r UpdateProductRequest) Patch() model.ProductPatch {
	return model.ProductPatch{
		Name:              r.Name,
		Description:       r.Description,
		Price:             r.Price,
		AvailableQuantity: r.AvailableQuantity,
		Active:            r.Active,
		ImageURL:          r.ImageURL,
		CategoryIDs:       r.CategoryIDs,
	}
}

type CreateOrderRequest struct {
	CustomerID     uint    `json:"customer_id"`
	DeliveryMethod *string `json:"delivery_method"`
	Notes          *string `json:"notes"`
}

type UpdateOrderRequest struct {
	DeliveryMethod *string `json:"delivery_method"`
	Notes          *string `json:"notes"`
}

func (r UpdateOrderRequest) Patch() model.OrderPatch {
	return model.OrderPatch{
		DeliveryMethod: r.DeliveryMethod,
		Notes:          r.Notes,
	}
}

type StateRequest struct {
	State string `json:"state"`
}

type AddLineRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type UpdateLineRequest struct {
	Quantity int `json:"quantity"`
}

// LineResponse carries the mutated line together with its order so the
// caller sees the recomputed total.
type LineResponse struct {
	Line  *model.OrderLine `json:"line"`
	Order *model.Order     `json:"order"`
}

type CreatePaymentRequest struct {
	OrderID        uint            `json:"order_id"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	TransactionRef *string         `json:"transaction_ref"`
	Note           *string         `json:"note"`
}

type UpdatePaymentRequest struct {
	Amount         *decimal.Decimal `json:"amount"`
	Method         *string          `json:"method"`
	TransactionRef *string          `json:"transaction_ref"`
	Note           *string          `json:"note"`
}

func (r UpdatePaymentRequest) Patch() model.PaymentPatch {
	patch := model.PaymentPatch{
		Amount:         r.Amount,
		TransactionRef: r.TransactionRef,
		Note:           r.Note,
	}
	if r.Method != nil {
		method := model.PaymentMethod(*r.Method)
		patch.Method = &method
	}
	return patch
}

type CreateShipmentRequest struct {
	OrderID uint             `json:"order_id"`
	Address string           `json:"address"`
	Carrier *string          `json:"carrier"`
	Cost    *decimal.Decimal `json:"cost"`
}

type UpdateShipmentRequest struct {
	Address *string          `json:"address"`
	Carrier *string          `json:"carrier"`
	Cost    *decimal.Decimal `json:"cost"`
}

func (r UpdateShipmentRequest) Patch() model.ShipmentPatch {
	return model.ShipmentPatch{
		Address: r.Address,
		Carrier: r.Carrier,
		Cost:    r.Cost,
	}
}

type DeleteResponse struct {
	OK bool `json:"ok"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
