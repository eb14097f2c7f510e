package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCard         PaymentMethod = "card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodQR           PaymentMethod = "qr"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodBankTransfer, MethodQR:
		return true
	}
	return false
}

type PaymentState string

const (
	PaymentPending   PaymentState = "pending"
	PaymentSucceeded PaymentState = "succeeded"
	PaymentFailed    PaymentState = "failed"
	PaymentRefunded  PaymentState = "refunded"
)

func (s PaymentState) Valid() bool {
	switch s {
	case PaymentPending, PaymentSucceeded, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Frozen reports whether a payment in this state rejects field updates.
func (s PaymentState) Frozen() bool {
	return s == PaymentRefunded || s == PaymentFailed
}

type Payment struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	OrderID        uint            `json:"order_id" gorm:"index;not null"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Method         PaymentMethod   `json:"method" gorm:"size:30;not null"`
	State          PaymentState    `json:"state" gorm:"size:20;index;not null"`
	TransactionRef *string         `json:"transaction_ref,omitempty" gorm:"size:255"`
	Note           *string         `json:"note,omitempty" gorm:"type:text"`
	CreatedAt      time.Time       `json:"created_at"`
}

type PaymentPatch struct {
	Amount         *decimal.Decimal
	Method         *PaymentMethod
	TransactionRef *string
	Note           *string
}

func (p PaymentPatch) Validate() error {
	if p.Amount != nil && !Money(*p.Amount).IsPositive() {
		return invalid("payment amount must be at least 0.01")
	}
	if p.Method != nil && !p.Method.Valid() {
		return invalid("unknown payment method " + string(*p.Method))
	}
	return nil
}

func (p PaymentPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Amount != nil {
		cols["amount"] = Money(*p.Amount)
	}
	if p.Method != nil {
		cols["method"] = *p.Method
	}
	if p.TransactionRef != nil {
		cols["transaction_ref"] = *p.TransactionRef
	}
	if p.Note != nil {
		cols["note"] = *p.Note
	}
	return cols
}

// Balance is an order's total against what has been paid on it.
type Balance struct {
	OrderID   uint            `json:"order_id"`
	Total     decimal.Decimal `json:"total"`
	Paid      decimal.Decimal `json:"paid"`
	Remaining decimal.Decimal `json:"remaining"`
}
