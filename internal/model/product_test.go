package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []Product {
	return []Product{
		{Name: "Vitamin C Serum", Brand: "Garnier", StockQuantity: 200, CostPrice: decimal.NewFromInt(1000), Origin: "France"},
		{Name: "Skin Cleanser", Brand: "Cetaphil", StockQuantity: 100, CostPrice: decimal.NewFromInt(280), Origin: "Switzerland"},
	}
}

func TestInventory_Get(t *testing.T) {
	inv := NewInventory(testProducts())

	tests := []struct {
		name      string
		index     int
		expected  string
		expectErr bool
	}{
		{name: "First product", index: 1, expected: "Vitamin C Serum"},
		{name: "Last product", index: 2, expected: "Skin Cleanser"},
		{name: "Reserved index zero", index: 0, expectErr: true},
		{name: "Negative index", index: -1, expectErr: true},
		{name: "Past the end", index: 3, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := inv.Get(tt.index)
			if tt.expectErr {
				require.Error(t, err)
				assert.Nil(t, p)
				assert.True(t, errors.Is(err, ErrProductNotFound))
				assert.Equal(t, KindNotFound, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.Name)
		})
	}
}

func TestInventory_GetMutatesInPlace(t *testing.T) {
	inv := NewInventory(testProducts())

	p, err := inv.Get(2)
	require.NoError(t, err)
	p.StockQuantity = 150

	again, err := inv.Get(2)
	require.NoError(t, err)
	assert.Equal(t, 150, again.StockQuantity)
}

func TestInventory_CopiesInput(t *testing.T) {
	src := testProducts()
	inv := NewInventory(src)
	src[0].StockQuantity = 1

	p, err := inv.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 200, p.StockQuantity)

	out := inv.Products()
	out[0].StockQuantity = 2
	p, _ = inv.Get(1)
	assert.Equal(t, 200, p.StockQuantity)
	assert.Equal(t, 2, inv.Len())
}

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		in       decimal.Decimal
		expected string
	}{
		{in: decimal.RequireFromString("280.50"), expected: "280.50"},
		{in: decimal.RequireFromString("1000.0"), expected: "1000.0"},
		{in: decimal.RequireFromString("1000"), expected: "1000"},
		{in: decimal.RequireFromString("0.05"), expected: "0.05"},
		{in: decimal.RequireFromString("1e3"), expected: "1000"},
		{in: decimal.NewFromInt(300), expected: "300"},
		{in: decimal.RequireFromString("2.50").Mul(decimal.NewFromInt(3)), expected: "7.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDecimal(tt.in))
	}
}
