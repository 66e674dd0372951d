package handler

import (
	"net/http"
	"storefront-api/internal/dto"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("user_id").(string)

	orders, err := h.orderService.GetOrders(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.OrdersResponse{
		Success: true,
		Orders:  orders,
	})
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("user_id").(string)

	order, err := h.orderService.GetOrder(ctx, userID, c.Param("orderNumber"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.OrderResponse{
		Success: true,
		Order:   *order,
	})
}
