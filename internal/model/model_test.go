package model

import (
	"storefront-api/internal/apperror"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRepriceRoundsToCents(t *testing.T) {
	line := OrderLine{UnitPrice: decimal.RequireFromString("0.10"), Quantity: 3}
	line.Reprice()
	assert.Equal(t, "0.30", line.Subtotal.StringFixed(MoneyPlaces))

	line = OrderLine{UnitPrice: decimal.RequireFromString("1.005"), Quantity: 1}
	line.Reprice()
	assert.Equal(t, "1.01", line.Subtotal.StringFixed(MoneyPlaces))
}

func TestCustomerPatch(t *testing.T) {
	current := &Customer{Name: "Ada Lovelace", Email: "ada@example.com"}

	phone := "555"
	p := CustomerPatch{Phone: &phone}
	assert.NoError(t, p.Validate())
	assert.False(t, p.ChangesIdentity(current))
	assert.Equal(t, map[string]interface{}{"phone": "555"}, p.Columns())

	empty := ""
	p = CustomerPatch{Email: &empty}
	assert.ErrorIs(t, p.Validate(), apperror.ErrInvalidArgument)
	assert.True(t, p.ChangesIdentity(current))

	blank := "   "
	assert.ErrorIs(t, CustomerPatch{Name: &blank}.Validate(), apperror.ErrInvalidArgument)

	name, email := " Ada Lovelace ", " ada@example.com\t"
	p = CustomerPatch{Name: &name, Email: &email}.Trimmed()
	assert.Equal(t, "Ada Lovelace", *p.Name)
	assert.Equal(t, "ada@example.com", *p.Email)
	assert.False(t, p.ChangesIdentity(current))
	assert.Equal(t, " Ada Lovelace ", name)
}

func TestProductPatchColumns(t *testing.T) {
	price := decimal.RequireFromString("9.999")
	qty := 4
	p := ProductPatch{Price: &price, AvailableQuantity: &qty}
	assert.NoError(t, p.Validate())

	cols := p.Columns()
	assert.Len(t, cols, 2)
	assert.Equal(t, "10.00", cols["price"].(decimal.Decimal).StringFixed(MoneyPlaces))
	assert.Equal(t, 4, cols["available_quantity"])

	negative := -1
	assert.ErrorIs(t, ProductPatch{AvailableQuantity: &negative}.Validate(), apperror.ErrInvalidArgument)

	belowCent := decimal.RequireFromString("-0.004")
	assert.NoError(t, ProductPatch{Price: &belowCent}.Validate())
	assert.True(t, ProductPatch{Price: &belowCent}.Columns()["price"].(decimal.Decimal).IsZero())
	assert.Empty(t, ProductPatch{}.Columns())
}

func TestPaymentPatchValidate(t *testing.T) {
	zero := decimal.Zero
	assert.ErrorIs(t, PaymentPatch{Amount: &zero}.Validate(), apperror.ErrInvalidArgument)

	subCent := decimal.RequireFromString("0.004")
	assert.ErrorIs(t, PaymentPatch{Amount: &subCent}.Validate(), apperror.ErrInvalidArgument)

	halfCent := decimal.RequireFromString("0.005")
	assert.NoError(t, PaymentPatch{Amount: &halfCent}.Validate())

	method := PaymentMethod("barter")
	assert.ErrorIs(t, PaymentPatch{Method: &method}.Validate(), apperror.ErrInvalidArgument)

	card := MethodCard
	assert.NoError(t, PaymentPatch{Method: &card}.Validate())
}

func TestEnums(t *testing.T) {
	assert.True(t, OrderInDelivery.Valid())
	assert.False(t, OrderState("shipped").Valid())

	assert.True(t, PaymentRefunded.Frozen())
	assert.True(t, PaymentFailed.Frozen())
	assert.False(t, PaymentPending.Frozen())

	assert.True(t, ShipmentFailed.Valid())
	assert.False(t, ShipmentState("").Valid())
}
