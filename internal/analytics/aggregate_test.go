package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barorder/internal/domain"
)

var (
	beer = &domain.Product{ID: 1, Name: "Lager", Category: domain.CategoryBeer}
	wine = &domain.Product{ID: 2, Name: "House Red", Category: domain.CategoryWine}
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func item(p *domain.Product, qty int, price int64) domain.OrderItem {
	return domain.OrderItem{Product: p, Quantity: qty, Price: d(price)}
}

func paidOrder(id uint, createdAt time.Time, items ...domain.OrderItem) domain.Order {
	total := decimal.Zero
	for _, i := range items {
		total = total.Add(i.Subtotal())
	}
	return domain.Order{ID: id, Status: domain.OrderStatusPaid, Total: total, Items: items, CreatedAt: createdAt}
}

func syntheticOrders() []domain.Order {
	day1 := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 5, 2, 21, 30, 0, 0, time.UTC)
	return []domain.Order{
		paidOrder(1, day1, item(beer, 2, 3), item(wine, 1, 5)),
		paidOrder(2, day1.Add(time.Hour), item(beer, 1, 3)),
		paidOrder(3, day2, item(wine, 3, 5)),
	}
}

func TestCompute_SyntheticDataset(t *testing.T) {
	s := Compute(syntheticOrders())

	assert.Equal(t, 3, s.TotalOrders)
	assert.True(t, d(29).Equal(s.TotalRevenue), s.TotalRevenue.String())

	require.Len(t, s.Products, 2)
	assert.Equal(t, "House Red", s.Products[0].Name)
	assert.Equal(t, 4, s.Products[0].UnitsSold)
	assert.True(t, d(20).Equal(s.Products[0].Revenue))
	assert.Equal(t, domain.CategoryWine, s.Products[0].Category)
	assert.Equal(t, "Lager", s.Products[1].Name)
	assert.Equal(t, 3, s.Products[1].UnitsSold)
	assert.True(t, d(9).Equal(s.Products[1].Revenue))

	require.Len(t, s.Categories, 2)
	assert.Equal(t, domain.CategoryBeer, s.Categories[0].Category)
	assert.Equal(t, 3, s.Categories[0].UnitsSold)
	assert.Equal(t, domain.CategoryWine, s.Categories[1].Category)
	assert.Equal(t, 4, s.Categories[1].UnitsSold)

	require.Len(t, s.Days, 2)
	assert.Equal(t, DayStat{Date: "2024-05-01", OrderCount: 2, Revenue: s.Days[0].Revenue}, s.Days[0])
	assert.True(t, d(14).Equal(s.Days[0].Revenue))
	assert.Equal(t, "2024-05-02", s.Days[1].Date)
	assert.Equal(t, 1, s.Days[1].OrderCount)
	assert.True(t, d(15).Equal(s.Days[1].Revenue))

	best, ok := s.BestSeller()
	require.True(t, ok)
	assert.Equal(t, "House Red", best.Name)
}

func TestCompute_AggregatesReconcileWithGrandTotals(t *testing.T) {
	s := Compute(syntheticOrders())

	productRevenue, categoryRevenue, dayRevenue := decimal.Zero, decimal.Zero, decimal.Zero
	productUnits, categoryUnits, dayOrders := 0, 0, 0
	for _, p := range s.Products {
		productRevenue = productRevenue.Add(p.Revenue)
		productUnits += p.UnitsSold
	}
	for _, c := range s.Categories {
		categoryRevenue = categoryRevenue.Add(c.Revenue)
		categoryUnits += c.UnitsSold
	}
	for _, day := range s.Days {
		dayRevenue = dayRevenue.Add(day.Revenue)
		dayOrders += day.OrderCount
	}

	assert.True(t, s.TotalRevenue.Equal(productRevenue))
	assert.True(t, s.TotalRevenue.Equal(categoryRevenue))
	assert.True(t, s.TotalRevenue.Equal(dayRevenue))
	assert.Equal(t, productUnits, categoryUnits)
	assert.Equal(t, s.TotalOrders, dayOrders)
}

func TestCompute_IgnoresUnpaidOrders(t *testing.T) {
	orders := syntheticOrders()
	orders = append(orders, domain.Order{
		ID:        4,
		Status:    domain.OrderStatusReady,
		Total:     d(100),
		Items:     []domain.OrderItem{item(beer, 20, 5)},
		CreatedAt: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
	})

	s := Compute(orders)
	assert.Equal(t, 3, s.TotalOrders)
	assert.True(t, d(29).Equal(s.TotalRevenue))
	assert.Len(t, s.Days, 2)
}

func TestCompute_TiesKeepFirstSeenOrder(t *testing.T) {
	at := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	s := Compute([]domain.Order{
		paidOrder(1, at, item(beer, 2, 3)),
		paidOrder(2, at, item(wine, 2, 5)),
	})

	require.Len(t, s.Products, 2)
	assert.Equal(t, "Lager", s.Products[0].Name)
	assert.Equal(t, "House Red", s.Products[1].Name)
}

func TestCompute_SkipsDeletedProducts(t *testing.T) {
	at := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	order := paidOrder(1, at, item(beer, 1, 3), item(nil, 2, 4))

	s := Compute([]domain.Order{order})
	assert.True(t, d(11).Equal(s.TotalRevenue))
	require.Len(t, s.Products, 1)
	assert.Equal(t, 1, s.Products[0].UnitsSold)
}

func TestCompute_DayUsesUTCDate(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	// 01:00 local on May 2nd is still May 1st in UTC
	s := Compute([]domain.Order{paidOrder(1, time.Date(2024, 5, 2, 1, 0, 0, 0, loc), item(beer, 1, 3))})

	require.Len(t, s.Days, 1)
	assert.Equal(t, "2024-05-01", s.Days[0].Date)
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil)

	assert.Equal(t, 0, s.TotalOrders)
	assert.True(t, s.TotalRevenue.IsZero())
	assert.Empty(t, s.Products)
	_, ok := s.BestSeller()
	assert.False(t, ok)
}
