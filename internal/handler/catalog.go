package handler

import (
	"net/http"
	"storefront-api/internal/dto"
	"storefront-api/internal/service"
	"strconv"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// -------- categories --------

func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in := service.CategoryInput{
		Description: req.Description,
		Active:      req.Active,
	}
	if req.Name != nil {
		in.Name = *req.Name
	}

	category, err := h.catalogService.CreateCategory(ctx, in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.catalogService.ListCategories(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	category, err := h.catalogService.GetCategory(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.CategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	category, err := h.catalogService.UpdateCategory(ctx, id, req.Patch())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogService.DeleteCategory(ctx, id); err != nil {
		return err
	}

	return deleted(c)
}

// -------- products --------

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	product, err := h.catalogService.CreateProduct(ctx, req.Input())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	activeOnly := false
	if raw := c.QueryParam("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid active filter")
		}
		activeOnly = v
	}

	products, err := h.catalogService.ListProducts(ctx, activeOnly)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.catalogService.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	product, err := h.catalogService.UpdateProduct(ctx, id, req.Patch())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogService.DeleteProduct(ctx, id); err != nil {
		return err
	}

	return deleted(c)
}
