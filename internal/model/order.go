package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderState string

const (
	OrderPending    OrderState = "pending"
	OrderInDelivery OrderState = "in_delivery"
	OrderDelivered  OrderState = "delivered"
	OrderCanceled   OrderState = "canceled"
)

func (s OrderState) Valid() bool {
	switch s {
	case OrderPending, OrderInDelivery, OrderDelivered, OrderCanceled:
		return true
	}
	return false
}

type Order struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	CustomerID     uint            `json:"customer_id" gorm:"index;not null"`
	State          OrderState      `json:"state" gorm:"size:20;index;not null"`
	Total          decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"` // derived from lines, see OrderService.RecomputeTotal
	DeliveryMethod *string         `json:"delivery_method,omitempty" gorm:"size:50"`
	Notes          *string         `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt      time.Time       `json:"created_at"`

	Lines []OrderLine `json:"lines,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderLine struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"order_id" gorm:"index;not null"`
	ProductID uint            `json:"product_id" gorm:"index;not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"` // frozen when the line is added
	Subtotal  decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time       `json:"created_at"`
}

// Reprice sets the subtotal from the frozen unit price and the quantity.
func (l *OrderLine) Reprice() {
	l.Subtotal = Money(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
}

type OrderPatch struct {
	DeliveryMethod *string
	Notes          *string
}

func (p OrderPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.DeliveryMethod != nil {
		cols["delivery_method"] = *p.DeliveryMethod
	}
	if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	return cols
}

type OrderFilter struct {
	CustomerID *uint
	State      *OrderState
}
