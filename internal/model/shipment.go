package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ShipmentState string

const (
	ShipmentPending   ShipmentState = "pending"
	ShipmentInTransit ShipmentState = "in_transit"
	ShipmentDelivered ShipmentState = "delivered"
	ShipmentFailed    ShipmentState = "failed"
)

func (s ShipmentState) Valid() bool {
	switch s {
	case ShipmentPending, ShipmentInTransit, ShipmentDelivered, ShipmentFailed:
		return true
	}
	return false
}

type Shipment struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	OrderID     uint             `json:"order_id" gorm:"uniqueIndex;not null"`
	Address     string           `json:"address" gorm:"size:300;not null"`
	State       ShipmentState    `json:"state" gorm:"size:20;not null"`
	Carrier     *string          `json:"carrier,omitempty" gorm:"size:200"`
	ShippedAt   *time.Time       `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time       `json:"delivered_at,omitempty"`
	Cost        *decimal.Decimal `json:"cost,omitempty" gorm:"type:decimal(10,2)"`
}

type ShipmentPatch struct {
	Address *string
	Carrier *string
	Cost    *decimal.Decimal
}

func (p ShipmentPatch) Validate() error {
	if p.Address != nil && strings.TrimSpace(*p.Address) == "" {
		return invalid("shipping address must not be empty")
	}
	if p.Cost != nil && Money(*p.Cost).IsNegative() {
		return invalid("shipping cost must not be negative")
	}
	return nil
}

func (p ShipmentPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Address != nil {
		cols["address"] = *p.Address
	}
	if p.Carrier != nil {
		cols["carrier"] = *p.Carrier
	}
	if p.Cost != nil {
		cols["cost"] = Money(*p.Cost)
	}
	return cols
}
