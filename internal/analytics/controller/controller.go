package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"barorder/internal/analytics"
	"barorder/internal/commons"
	"barorder/internal/domain"
	"barorder/internal/dto"
	"barorder/internal/export"
)

type PaidOrderSource interface {
	ListPaidOrders(ctx context.Context) ([]domain.Order, error)
}

type Controller struct {
	orders PaidOrderSource
	logger *zap.Logger
}

func NewController(orders PaidOrderSource, logger *zap.Logger) *Controller {
	return &Controller{orders: orders, logger: logger}
}

// HandleSummary computes sales figures over every paid order.
func (c *Controller) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := c.summary(r.Context())
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toResponse(summary), c.logger)
}

func (c *Controller) HandleExport(w http.ResponseWriter, r *http.Request) {
	summary, err := c.summary(r.Context())
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	file, err := export.Analytics(summary)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	export.WriteAttachment(w, "analytics.xlsx", file, c.logger)
}

func (c *Controller) summary(ctx context.Context) (analytics.Summary, error) {
	orders, err := c.orders.ListPaidOrders(ctx)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Compute(orders), nil
}

func toResponse(s analytics.Summary) dto.AnalyticsResponse {
	resp := dto.AnalyticsResponse{
		TotalRevenue: s.TotalRevenue.InexactFloat64(),
		TotalOrders:  s.TotalOrders,
		Products:     make([]dto.ProductStatDTO, 0, len(s.Products)),
		Categories:   make([]dto.CategoryStatDTO, 0, len(s.Categories)),
		Days:         make([]dto.DayStatDTO, 0, len(s.Days)),
	}

	for _, p := range s.Products {
		resp.Products = append(resp.Products, toProductStat(p))
	}
	for _, cat := range s.Categories {
		resp.Categories = append(resp.Categories, dto.CategoryStatDTO{
			Category:  string(cat.Category),
			UnitsSold: cat.UnitsSold,
			Revenue:   cat.Revenue.InexactFloat64(),
		})
	}
	for _, d := range s.Days {
		resp.Days = append(resp.Days, dto.DayStatDTO{
			Date:       d.Date,
			OrderCount: d.OrderCount,
			Revenue:    d.Revenue.InexactFloat64(),
		})
	}

	if best, ok := s.BestSeller(); ok {
		stat := toProductStat(best)
		resp.BestSeller = &stat
	}

	return resp
}

func toProductStat(p analytics.ProductStat) dto.ProductStatDTO {
	return dto.ProductStatDTO{
		Name:      p.Name,
		Category:  string(p.Category),
		UnitsSold: p.UnitsSold,
		Revenue:   p.Revenue.InexactFloat64(),
	}
}
