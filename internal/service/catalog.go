package service

import (
	"context"
	"errors"
	"fmt"
	"storefront-api/internal/apperror"
	"storefront-api/internal/catalog"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"gorm.io/gorm"
)

type CatalogService interface {
	ListProducts(ctx context.Context, q catalog.Query) ([]*model.Product, error)
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
}

type catalogServiceImpl struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogServiceImpl{
		productRepo: productRepo,
	}
}

// ListProducts loads the catalog and applies filtering/sorting in memory.
// The catalog is small; the query logic stays a pure function over the list.
func (s *catalogServiceImpl) ListProducts(ctx context.Context, q catalog.Query) ([]*model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	return catalog.Apply(products, q), nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product %s not found", productID)
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	return product, nil
}
