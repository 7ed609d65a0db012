package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"barorder/internal/domain"
)

const dayLayout = "2006-01-02"

type ProductStat struct {
	Name      string
	Category  domain.Category
	UnitsSold int
	Revenue   decimal.Decimal
}

type CategoryStat struct {
	Category  domain.Category
	UnitsSold int
	Revenue   decimal.Decimal
}

type DayStat struct {
	Date       string
	OrderCount int
	Revenue    decimal.Decimal
}

type Summary struct {
	TotalRevenue decimal.Decimal
	TotalOrders  int
	// Products is sorted by units sold, descending. Ties keep the order in
	// which the products were first seen.
	Products   []ProductStat
	Categories []CategoryStat
	Days       []DayStat
}

// BestSeller is the product with the most units sold.
func (s Summary) BestSeller() (ProductStat, bool) {
	if len(s.Products) == 0 {
		return ProductStat{}, false
	}
	return s.Products[0], true
}

// Compute reduces paid orders to sales figures. Orders in any other status
// are ignored. Line items whose product no longer exists still count towards
// their order's total but not towards product or category figures.
func Compute(orders []domain.Order) Summary {
	summary := Summary{
		TotalRevenue: decimal.Zero,
		Products:     []ProductStat{},
		Categories:   []CategoryStat{},
		Days:         []DayStat{},
	}

	productIdx := map[string]int{}
	categoryIdx := map[domain.Category]int{}
	dayIdx := map[string]int{}

	for _, order := range orders {
		if order.Status != domain.OrderStatusPaid {
			continue
		}

		summary.TotalOrders++
		summary.TotalRevenue = summary.TotalRevenue.Add(order.Total)

		day := order.CreatedAt.UTC().Format(dayLayout)
		i, ok := dayIdx[day]
		if !ok {
			i = len(summary.Days)
			dayIdx[day] = i
			summary.Days = append(summary.Days, DayStat{Date: day, Revenue: decimal.Zero})
		}
		summary.Days[i].OrderCount++
		summary.Days[i].Revenue = summary.Days[i].Revenue.Add(order.Total)

		for _, item := range order.Items {
			if item.Product == nil {
				continue
			}
			revenue := item.Subtotal()

			p, ok := productIdx[item.Product.Name]
			if !ok {
				p = len(summary.Products)
				productIdx[item.Product.Name] = p
				summary.Products = append(summary.Products, ProductStat{
					Name:     item.Product.Name,
					Category: item.Product.Category,
					Revenue:  decimal.Zero,
				})
			}
			summary.Products[p].UnitsSold += item.Quantity
			summary.Products[p].Revenue = summary.Products[p].Revenue.Add(revenue)

			c, ok := categoryIdx[item.Product.Category]
			if !ok {
				c = len(summary.Categories)
				categoryIdx[item.Product.Category] = c
				summary.Categories = append(summary.Categories, CategoryStat{
					Category: item.Product.Category,
					Revenue:  decimal.Zero,
				})
			}
			summary.Categories[c].UnitsSold += item.Quantity
			summary.Categories[c].Revenue = summary.Categories[c].Revenue.Add(revenue)
		}
	}

	sort.SliceStable(summary.Products, func(i, j int) bool {
		return summary.Products[i].UnitsSold > summary.Products[j].UnitsSold
	})
	sort.Slice(summary.Days, func(i, j int) bool {
		return summary.Days[i].Date < summary.Days[j].Date
	})

	return summary
}
