// Package model holds the persisted entities, their enumerations and the
// typed patches used for partial updates.
package model

import (
	"storefront-api/internal/apperror"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places every stored amount keeps.
const MoneyPlaces = 2

func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

func invalid(msg string) error {
	return apperror.InvalidArgument("%s", msg)
}
