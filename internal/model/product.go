package model

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// MaxStockQuantity is the largest stock level a product may hold. It matches
// the range of the stock_quantity column so both backends accept it.
const MaxStockQuantity = math.MaxInt32

// Product represents a beauty product held in stock.
type Product struct {
	Name          string          `json:"name" db:"name"`
	Brand         string          `json:"brand" db:"brand"`
	StockQuantity int             `json:"stockQuantity" db:"stock_quantity"`
	CostPrice     decimal.Decimal `json:"costPrice" db:"cost_price"`
	Origin        string          `json:"origin" db:"origin"`
}

// Inventory owns the ordered product list. Products are addressed by a
// 1-based index; index 0 is reserved and never valid.
type Inventory struct {
	products []Product
}

// NewInventory creates an inventory holding a copy of products.
func NewInventory(products []Product) *Inventory {
	inv := &Inventory{products: make([]Product, len(products))}
	copy(inv.products, products)
	return inv
}

// Len returns the number of products. Valid indices are 1..Len().
func (inv *Inventory) Len() int {
	return len(inv.products)
}

// Get returns a pointer to the product at the 1-based index.
// Mutations through the pointer update the inventory.
func (inv *Inventory) Get(index int) (*Product, error) {
	if index < 1 || index > len(inv.products) {
		return nil, &DomainError{
			Kind:    KindNotFound,
			Code:    ErrCodeProductNotFound,
			Message: fmt.Sprintf("Product %d not found (valid IDs are 1-%d)", index, len(inv.products)),
		}
	}
	return &inv.products[index-1], nil
}

// Products returns a copy of the product list in index order.
func (inv *Inventory) Products() []Product {
	out := make([]Product, len(inv.products))
	copy(out, inv.products)
	return out
}

// FormatDecimal renders d with the number of fractional digits it was
// created with, so "280.50" and "1000.0" keep their trailing zeros.
func FormatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
