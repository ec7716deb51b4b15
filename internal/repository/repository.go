package repository

import (
	"context"

	"wecare/internal/model"

	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for loading and persisting the inventory.
type ProductRepository interface {
	// Load reads the full product list. A missing store is seeded with
	// DefaultProducts before it is read.
	Load(ctx context.Context) (*model.Inventory, error)

	// Save overwrites the store with the inventory's current product list.
	Save(ctx context.Context, inv *model.Inventory) error
}

// DefaultProducts returns the sample data written when no store exists yet.
func DefaultProducts() []model.Product {
	return []model.Product{
		{Name: "Vitamin C Serum", Brand: "Garnier", StockQuantity: 200, CostPrice: decimal.NewFromInt(1000), Origin: "France"},
		{Name: "Skin Cleanser", Brand: "Cetaphil", StockQuantity: 100, CostPrice: decimal.NewFromInt(280), Origin: "Switzerland"},
		{Name: "Sunscreen", Brand: "Aqualogica", StockQuantity: 200, CostPrice: decimal.NewFromInt(700), Origin: "India"},
	}
}
