package controller

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"barorder/internal/commons"
	"barorder/internal/domain"
	"barorder/internal/dto"
	apperrors "barorder/internal/errors"
	"barorder/internal/export"
)

const maxPrice = 99999999.99

type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, id int, p domain.Product) ([]domain.Product, error)
	DeleteProduct(ctx context.Context, id int) ([]domain.Product, error)
}

type Controller struct {
	catalog           CatalogService
	lowStockThreshold int
	logger            *zap.Logger
}

func NewController(catalog CatalogService, lowStockThreshold int, logger *zap.Logger) *Controller {
	return &Controller{
		catalog:           catalog,
		lowStockThreshold: lowStockThreshold,
		logger:            logger,
	}
}

// HandleListProducts serves the menu and the admin product list.
func (c *Controller) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.ListProducts(r.Context())
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	commons.WriteJSON(w, http.StatusOK, c.listResponse(products), c.logger)
}

func (c *Controller) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	p, err := c.decodeProduct(r)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	products, err := c.catalog.CreateProduct(r.Context(), p)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, c.listResponse(products), c.logger)
}

func (c *Controller) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	p, err := c.decodeProduct(r)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	products, err := c.catalog.UpdateProduct(r.Context(), id, p)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	commons.WriteJSON(w, http.StatusOK, c.listResponse(products), c.logger)
}

func (c *Controller) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	products, err := c.catalog.DeleteProduct(r.Context(), id)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	commons.WriteJSON(w, http.StatusOK, c.listResponse(products), c.logger)
}

// HandleExportProducts streams the catalog as an xlsx workbook.
func (c *Controller) HandleExportProducts(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.ListProducts(r.Context())
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	file, err := export.Products(products, c.lowStockThreshold)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	export.WriteAttachment(w, "products.xlsx", file, c.logger)
}

func (c *Controller) decodeProduct(r *http.Request) (domain.Product, error) {
	var req dto.ProductRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		return domain.Product{}, err
	}

	if err := validateProductRequest(req); err != nil {
		return domain.Product{}, err
	}

	return domain.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       decimal.NewFromFloat(req.Price).Round(2),
		Category:    domain.Category(req.Category),
		Stock:       req.Stock,
	}, nil
}

func validateProductRequest(req dto.ProductRequest) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.Name) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}

	if math.IsNaN(req.Price) || req.Price < 0 || req.Price > maxPrice {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be a non-negative number",
		})
	}

	if req.Stock < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "stock",
			Message: "stock must be a non-negative integer",
		})
	}

	if !domain.Category(req.Category).Valid() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "category",
			Message: "category must be one of BEER, WINE, COCKTAIL, SOFT_DRINK",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func productIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid productId", apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		})
	}
	return id, nil
}

func (c *Controller) listResponse(products []domain.Product) dto.ProductListResponse {
	resp := dto.ProductListResponse{Products: make([]dto.ProductDTO, 0, len(products))}
	for _, p := range products {
		resp.Products = append(resp.Products, ToProductDTO(p, c.lowStockThreshold))
	}
	return resp
}

func ToProductDTO(p domain.Product, lowStockThreshold int) dto.ProductDTO {
	return dto.ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Category:    string(p.Category),
		Stock:       p.Stock,
		StockLevel:  string(p.StockLevel(lowStockThreshold)),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
