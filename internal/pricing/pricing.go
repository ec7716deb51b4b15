// Package pricing holds the store's fixed markup and promotion policy.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// MarkupMultiplier turns cost into selling price (200% markup).
	MarkupMultiplier = 3

	// PromotionRatio is the number of paid units that earn one free unit.
	PromotionRatio = 3
)

// ShippingFee is the flat fee added to an invoice when the customer wants delivery.
var ShippingFee = decimal.NewFromInt(500)

// SellingPrice returns the selling price for a unit with the given cost.
func SellingPrice(cost decimal.Decimal) decimal.Decimal {
	return cost.Mul(decimal.NewFromInt(MarkupMultiplier))
}

// FreeUnits returns the number of free units earned by paid units (buy 3 get 1 free).
func FreeUnits(paid int) int {
	if paid <= 0 {
		return 0
	}
	return paid / PromotionRatio
}

// TotalUnitsConsumed returns the stock removed by selling paid units. The
// result saturates at math.MaxInt instead of wrapping.
func TotalUnitsConsumed(paid int) int {
	free := FreeUnits(paid)
	if paid > math.MaxInt-free {
		return math.MaxInt
	}
	return paid + free
}
