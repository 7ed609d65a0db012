package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryBeer      Category = "BEER"
	CategoryWine      Category = "WINE"
	CategoryCocktail  Category = "COCKTAIL"
	CategorySoftDrink Category = "SOFT_DRINK"
)

var Categories = []Category{CategoryBeer, CategoryWine, CategoryCocktail, CategorySoftDrink}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type StockLevel string

const (
	StockLevelIn  StockLevel = "IN_STOCK"
	StockLevelLow StockLevel = "LOW_STOCK"
	StockLevelOut StockLevel = "OUT_OF_STOCK"
)

type Product struct {
	ID          int
	Name        string
	Description string
	Price       decimal.Decimal
	Category    Category
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockLevel classifies Stock for display. Stock is informational only and
// is never decremented by orders.
func (p Product) StockLevel(lowThreshold int) StockLevel {
	switch {
	case p.Stock <= 0:
		return StockLevelOut
	case p.Stock <= lowThreshold:
		return StockLevelLow
	default:
		return StockLevelIn
	}
}
