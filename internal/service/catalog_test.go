package service

import (
	"context"
	"storefront-api/internal/apperror"
	"storefront-api/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryNamesAreUniqueIgnoringCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.catalog.CreateCategory(ctx, CategoryInput{Name: "Garden"})
	require.NoError(t, err)
	assert.True(t, c.Active)

	_, err = f.catalog.CreateCategory(ctx, CategoryInput{Name: "garden"})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	tools, err := f.catalog.CreateCategory(ctx, CategoryInput{Name: "Tools"})
	require.NoError(t, err)

	name := "GARDEN"
	_, err = f.catalog.UpdateCategory(ctx, tools.ID, model.CategoryPatch{Name: &name})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	inactive := false
	tools, err = f.catalog.UpdateCategory(ctx, tools.ID, model.CategoryPatch{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, tools.Active)
}

func TestProductCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	garden, err := f.catalog.CreateCategory(ctx, CategoryInput{Name: "Garden"})
	require.NoError(t, err)
	tools, err := f.catalog.CreateCategory(ctx, CategoryInput{Name: "Tools"})
	require.NoError(t, err)

	p, err := f.catalog.CreateProduct(ctx, model.ProductInput{
		Name:        "Spade",
		Price:       money("19.999"),
		CategoryIDs: []uint{tools.ID, garden.ID, tools.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "20.00", p.Price.StringFixed(2))
	assert.True(t, p.Active)
	require.Len(t, p.Categories, 2)
	assert.Equal(t, "Garden", p.Categories[0].Name)

	_, err = f.catalog.CreateProduct(ctx, model.ProductInput{Name: "Rake", Price: money("5"), CategoryIDs: []uint{999}})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	p, err = f.catalog.UpdateProduct(ctx, p.ID, model.ProductPatch{CategoryIDs: []uint{garden.ID}})
	require.NoError(t, err)
	require.Len(t, p.Categories, 1)

	require.NoError(t, f.catalog.DeleteCategory(ctx, garden.ID))

	p, err = f.catalog.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, p.Categories)
}

func TestProductValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.catalog.CreateProduct(ctx, model.ProductInput{Name: "Bad", Price: money("-1")})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = f.catalog.CreateProduct(ctx, model.ProductInput{Name: "Bad", Price: money("1"), AvailableQuantity: -3})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = f.catalog.CreateProduct(ctx, model.ProductInput{Name: "   ", Price: money("1")})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}

func TestListProductsActiveOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "Visible", "1.00")

	inactive := false
	_, err := f.catalog.CreateProduct(ctx, model.ProductInput{Name: "Hidden", Price: money("1"), Active: &inactive})
	require.NoError(t, err)

	all, err := f.catalog.ListProducts(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := f.catalog.ListProducts(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Visible", active[0].Name)
}

func TestDeleteProductIsProtectedByOrderLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.order(t)
	p := f.product(t, "Kettle", "25.00")

	line, _, err := f.orders.AddLine(ctx, order.ID, p.ID, 1)
	require.NoError(t, err)

	err = f.catalog.DeleteProduct(ctx, p.ID)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = f.orders.RemoveLine(ctx, line.ID)
	require.NoError(t, err)
	require.NoError(t, f.catalog.DeleteProduct(ctx, p.ID))

	_, err = f.catalog.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSeedCatalogOnlyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.catalog.SeedCatalog(ctx))
	first, err := f.catalog.ListProducts(ctx, false)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	require.NoError(t, f.catalog.SeedCatalog(ctx))
	second, err := f.catalog.ListProducts(ctx, false)
	require.NoError(t, err)
	assert.Len(t, second, len(first))

	p, err := f.catalog.GetProduct(ctx, first[0].ID)
	require.NoError(t, err)
	assert.Len(t, p.Categories, 1)
}
