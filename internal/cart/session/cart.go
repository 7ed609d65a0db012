package session

import (
	"fmt"

	"github.com/shopspring/decimal"

	"barorder/internal/domain"
	apperrors "barorder/internal/errors"
)

// Cart holds the lines a customer is about to order. At most one line exists
// per product and every line has a quantity of at least one.
type Cart struct {
	items []domain.CartItem
}

// Add puts one unit of p in the cart, appending a new line when p is not in it
// yet. The line keeps the product as it was when first added.
func (c *Cart) Add(p domain.Product) {
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, domain.CartItem{Product: p, Quantity: 1})
}

func (c *Cart) Remove(productID int) {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces a line's quantity. Zero removes the line.
func (c *Cart) SetQuantity(productID, quantity int) error {
	if quantity < 0 {
		return apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be zero or more",
		})
	}

	for i := range c.items {
		if c.items[i].Product.ID != productID {
			continue
		}
		if quantity == 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		} else {
			c.items[i].Quantity = quantity
		}
		return nil
	}

	if quantity == 0 {
		return nil
	}
	return apperrors.NewNotFoundError(fmt.Sprintf("product %d is not in the cart", productID))
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) Items() []domain.CartItem {
	items := make([]domain.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) Total() decimal.Decimal {
	return domain.CartTotal(c.items)
}
