package service

import (
	"context"

	"go.uber.org/zap"

	"barorder/internal/domain"
	apperrors "barorder/internal/errors"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	Insert(ctx context.Context, p domain.Product) (int, error)
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id int) error
}

// CatalogService manages the product catalog. Every write is followed by a
// full re-read, which is what callers get back.
type CatalogService struct {
	repo   Repository
	logger *zap.Logger
}

func NewCatalogService(repo Repository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewRemoteCallError("Failed to load products", err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, err
		}
		return nil, apperrors.NewRemoteCallError("Failed to load product", err)
	}
	return p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, p domain.Product) ([]domain.Product, error) {
	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, apperrors.NewRemoteCallError("Failed to create product", err)
	}
	s.logger.Info("product created", zap.Int("productId", id), zap.String("name", p.Name))

	return s.ListProducts(ctx)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int, p domain.Product) ([]domain.Product, error) {
	p.ID = id
	if err := s.repo.Update(ctx, p); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, err
		}
		return nil, apperrors.NewRemoteCallError("Failed to update product", err)
	}
	s.logger.Info("product updated", zap.Int("productId", id), zap.Int("stock", p.Stock))

	return s.ListProducts(ctx)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int) ([]domain.Product, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, err
		}
		return nil, apperrors.NewRemoteCallError("Failed to delete product", err)
	}
	s.logger.Info("product deleted", zap.Int("productId", id))

	return s.ListProducts(ctx)
}
