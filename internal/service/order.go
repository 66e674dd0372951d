package service

import (
	"context"
	"errors"
	"fmt"
	"storefront-api/internal/apperror"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"gorm.io/gorm"
)

type OrderService interface {
	GetOrders(ctx context.Context, userID string) ([]dto.OrderView, error)
	GetOrder(ctx context.Context, userID, orderNumber string) (*dto.OrderView, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderServiceImpl{
		orderRepo: orderRepo,
	}
}

func (s *orderServiceImpl) GetOrders(ctx context.Context, userID string) ([]dto.OrderView, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	views := make([]dto.OrderView, 0, len(orders))
	for _, order := range orders {
		view, err := s.orderView(ctx, order)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}

	return views, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, userID, orderNumber string) (*dto.OrderView, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("order %s not found", orderNumber)
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	// orders are visible only to the user who placed them
	if order.UserID != userID {
		return nil, apperror.NotFound("order %s not found", orderNumber)
	}

	return s.orderView(ctx, order)
}

func (s *orderServiceImpl) orderView(ctx context.Context, order *model.Order) (*dto.OrderView, error) {
	items, err := s.orderRepo.GetOrderItems(ctx, order.OrderNumber)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}

	itemViews := make([]dto.OrderItemView, 0, len(items))
	for _, item := range items {
		itemViews = append(itemViews, dto.OrderItemView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return &dto.OrderView{
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		Amount:      order.Amount,
		Currency:    order.Currency,
		Items:       itemViews,
		CreatedAt:   order.CreatedAt.Unix(),
	}, nil
}
