package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartTotal(t *testing.T) {
	items := []CartItem{
		{Product: Product{ID: 1, Name: "Beer", Price: decimal.NewFromInt(3)}, Quantity: 2},
		{Product: Product{ID: 2, Name: "Wine", Price: decimal.NewFromInt(5)}, Quantity: 1},
	}

	assert.True(t, decimal.NewFromInt(11).Equal(CartTotal(items)))
}

func TestCartTotal_Empty(t *testing.T) {
	assert.True(t, CartTotal(nil).IsZero())
}

func TestCartItem_Subtotal_Fractional(t *testing.T) {
	item := CartItem{Product: Product{Price: decimal.RequireFromString("0.10")}, Quantity: 3}
	assert.Equal(t, "0.3", item.Subtotal().String())
}
