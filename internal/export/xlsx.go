package export

import (
	"fmt"
	"net/http"

	"github.com/tealeg/xlsx"
	"go.uber.org/zap"

	"barorder/internal/analytics"
	"barorder/internal/domain"
)

const (
	contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	timeLayout  = "2006-01-02 15:04:05"
)

// Products builds a one-sheet workbook of the catalog.
func Products(products []domain.Product, lowStockThreshold int) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, fmt.Errorf("creating products sheet: %w", err)
	}

	addHeader(sheet, "ID", "Name", "Description", "Category", "Price", "Stock", "Stock Level", "Created At", "Updated At")

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Description)
		row.AddCell().SetString(string(p.Category))
		row.AddCell().SetFloat(p.Price.InexactFloat64())
		row.AddCell().SetInt(p.Stock)
		row.AddCell().SetString(string(p.StockLevel(lowStockThreshold)))
		row.AddCell().SetString(p.CreatedAt.UTC().Format(timeLayout))
		row.AddCell().SetString(p.UpdatedAt.UTC().Format(timeLayout))
	}

	return file, nil
}

func addHeader(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetString(h)
	}
}

// WriteAttachment sends file as a download named filename.
func WriteAttachment(w http.ResponseWriter, filename string, file *xlsx.File, logger *zap.Logger) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Transfer-Encoding", "binary")
	w.Header().Set("Expires", "0")

	if err := file.Write(w); err != nil {
		logger.Error("failed to write xlsx", zap.String("file", filename), zap.Error(err))
	}
}

// Analytics builds a workbook with one sheet per breakdown of summary.
func Analytics(summary analytics.Summary) (*xlsx.File, error) {
	file := xlsx.NewFile()

	overview, err := file.AddSheet("Summary")
	if err != nil {
		return nil, fmt.Errorf("creating summary sheet: %w", err)
	}
	addHeader(overview, "Metric", "Value")
	addMetric(overview, "Total Revenue").SetFloat(summary.TotalRevenue.InexactFloat64())
	addMetric(overview, "Total Orders").SetInt(summary.TotalOrders)
	if best, ok := summary.BestSeller(); ok {
		addMetric(overview, "Best Seller").SetString(best.Name)
	}

	products, err := file.AddSheet("Products")
	if err != nil {
		return nil, fmt.Errorf("creating products sheet: %w", err)
	}
	addHeader(products, "Product", "Category", "Units Sold", "Revenue")
	for _, p := range summary.Products {
		row := products.AddRow()
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(string(p.Category))
		row.AddCell().SetInt(p.UnitsSold)
		row.AddCell().SetFloat(p.Revenue.InexactFloat64())
	}

	categories, err := file.AddSheet("Categories")
	if err != nil {
		return nil, fmt.Errorf("creating categories sheet: %w", err)
	}
	addHeader(categories, "Category", "Units Sold", "Revenue")
	for _, c := range summary.Categories {
		row := categories.AddRow()
		row.AddCell().SetString(string(c.Category))
		row.AddCell().SetInt(c.UnitsSold)
		row.AddCell().SetFloat(c.Revenue.InexactFloat64())
	}

	days, err := file.AddSheet("Days")
	if err != nil {
		return nil, fmt.Errorf("creating days sheet: %w", err)
	}
	addHeader(days, "Date", "Orders", "Revenue")
	for _, d := range summary.Days {
		row := days.AddRow()
		row.AddCell().SetString(d.Date)
		row.AddCell().SetInt(d.OrderCount)
		row.AddCell().SetFloat(d.Revenue.InexactFloat64())
	}

	return file, nil
}

func addMetric(sheet *xlsx.Sheet, name string) *xlsx.Cell {
	row := sheet.AddRow()
	row.AddCell().SetString(name)
	return row.AddCell()
}
