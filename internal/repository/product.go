package repository

import (
	"context"
	"storefront-api/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Seed(ctx context.Context) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error)
	GetAll(ctx context.Context) ([]*model.Product, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Seed(ctx context.Context) error {
	products := []model.Product{
		{ID: "mini_dragon", Name: "Dragon Miniature", Description: "Hand-painted resin dragon", Category: "miniatures", Material: "resin", Price: decimal.NewFromFloat(18.50), Currency: "usd"},
		{ID: "mini_knight", Name: "Knight Miniature", Description: "Pewter knight with shield", Category: "miniatures", Material: "pewter", Price: decimal.NewFromFloat(24.00), Currency: "usd"},
		{ID: "dice_oak", Name: "Oak Dice Set", Description: "Seven-piece carved oak dice set", Category: "dice", Material: "wood", Price: decimal.NewFromFloat(32.00), Currency: "usd"},
		{ID: "tray_walnut", Name: "Walnut Dice Tray", Description: "Folding walnut tray with felt lining", Category: "accessories", Material: "wood", Price: decimal.NewFromFloat(45.00), Currency: "usd"},
	}

	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) GetAll(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}
