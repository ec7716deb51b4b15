package model

import (
	"github.com/shopspring/decimal"
)

// RestockLine represents one product received from a supplier.
type RestockLine struct {
	Index    int              `json:"index" validate:"gte=1"`
	Quantity int              `json:"quantity" validate:"gte=1"`
	NewCost  *decimal.Decimal `json:"newCost,omitempty" validate:"omitempty,gt=0"`
}

// RestockBatch represents a purchase from a single supplier.
type RestockBatch struct {
	Supplier string        `json:"supplier" validate:"required"`
	Lines    []RestockLine `json:"lines" validate:"dive"`
}

// SaleLine represents one product sold to a customer. Quantity counts paid units only.
type SaleLine struct {
	Index    int `json:"index" validate:"gte=1"`
	Quantity int `json:"quantity" validate:"gte=1"`
}

// SaleBatch represents a sale to a single customer.
type SaleBatch struct {
	CustomerName string     `json:"customerName" validate:"required"`
	Phone        string     `json:"phone" validate:"required"`
	Lines        []SaleLine `json:"lines" validate:"dive"`
	Shipping     bool       `json:"shipping"`
}

// SaleCheck is the outcome of validating a sale line against available stock.
type SaleCheck struct {
	Paid      int
	Free      int
	Required  int
	Available int
}
