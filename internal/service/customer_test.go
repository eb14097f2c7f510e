package service

import (
	"context"
	"storefront-api/internal/apperror"
	"storefront-api/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	phone := "+1 555 0100"
	c, err := f.customers.CreateCustomer(ctx, CustomerInput{Name: " Grace Hopper ", Email: "grace@example.com", Phone: &phone})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "Grace Hopper", c.Name)
	assert.False(t, c.RegisteredAt.IsZero())

	_, err = f.customers.CreateCustomer(ctx, CustomerInput{Name: "Other", Email: "GRACE@example.com"})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = f.customers.CreateCustomer(ctx, CustomerInput{Name: "", Email: "x@example.com"})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = f.customers.CreateCustomer(ctx, CustomerInput{Name: "Nobody"})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	all, err := f.customers.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCustomerIdentityLocksOnceOrdered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.customer(t, "ada@example.com")

	name := "Augusta Ada King"
	c, err := f.customers.UpdateCustomer(ctx, c.ID, model.CustomerPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, c.Name)

	_, err = f.orders.CreateOrder(ctx, c.ID, nil, nil)
	require.NoError(t, err)

	email := "countess@example.com"
	_, err = f.customers.UpdateCustomer(ctx, c.ID, model.CustomerPatch{Email: &email})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	address := "12 St James's Square"
	c, err = f.customers.UpdateCustomer(ctx, c.ID, model.CustomerPatch{Address: &address})
	require.NoError(t, err)
	require.NotNil(t, c.Address)
	assert.Equal(t, address, *c.Address)
	assert.Equal(t, "ada@example.com", c.Email)
}

func TestUpdateCustomerTrimsIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.customer(t, "ada@example.com")

	blank := "   "
	_, err := f.customers.UpdateCustomer(ctx, c.ID, model.CustomerPatch{Name: &blank})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	_, err = f.customers.UpdateCustomer(ctx, c.ID, model.CustomerPatch{Email: &blank})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	email := "  lovelace@example.com "
	c, err = f.customers.UpdateCustomer(ctx, c.ID, model.CustomerPatch{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "lovelace@example.com", c.Email)
}

func TestFullRecordUpdateOfOrderedCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.customer(t, "ada@example.com")
	_, err := f.orders.CreateOrder(ctx, c.ID, nil, nil)
	require.NoError(t, err)

	name, email, phone := c.Name, " ada@example.com", "+44 20 7946 0000"
	c, err = f.customers.UpdateCustomer(ctx, c.ID, model.CustomerPatch{Name: &name, Email: &email, Phone: &phone})
	require.NoError(t, err)
	require.NotNil(t, c.Phone)
	assert.Equal(t, phone, *c.Phone)
	assert.Equal(t, "ada@example.com", c.Email)

	renamed := "Augusta Ada King"
	_, err = f.customers.UpdateCustomer(ctx, c.ID, model.CustomerPatch{Name: &renamed, Email: &email})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestUpdateCustomerEmailConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.customer(t, "taken@example.com")
	c := f.customer(t, "free@example.com")

	email := "taken@example.com"
	_, err := f.customers.UpdateCustomer(ctx, c.ID, model.CustomerPatch{Email: &email})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = f.customers.UpdateCustomer(ctx, 999, model.CustomerPatch{Email: &email})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteCustomerIsProtectedByOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.order(t)

	err := f.customers.DeleteCustomer(ctx, order.CustomerID)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	require.NoError(t, f.orders.DeleteOrder(ctx, order.ID))
	require.NoError(t, f.customers.DeleteCustomer(ctx, order.CustomerID))

	_, err = f.customers.GetCustomer(ctx, order.CustomerID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
