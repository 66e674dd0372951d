package handler

import (
	"net/http"
	"storefront-api/internal/apperror"
	"storefront-api/internal/catalog"
	"storefront-api/internal/dto"
	"storefront-api/internal/service"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	q, err := queryFromParams(c)
	if err != nil {
		return err
	}

	products, err := h.catalogService.ListProducts(ctx, q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.ProductsResponse{
		Success:  true,
		Products: products,
	})
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.catalogService.GetProduct(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.ProductResponse{
		Success: true,
		Product: product,
	})
}

func queryFromParams(c echo.Context) (catalog.Query, error) {
	q := catalog.Query{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Sort:     c.QueryParam("sort"),
	}

	if materials := c.QueryParam("materials"); materials != "" {
		q.Materials = strings.Split(materials, ",")
	}

	if raw := c.QueryParam("min_price"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return q, apperror.Validation("invalid min_price %q", raw)
		}
		q.MinPrice = &min
	}
	if raw := c.QueryParam("max_price"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			return q, apperror.Validation("invalid max_price %q", raw)
		}
		q.MaxPrice = &max
	}

	return q, nil
}
