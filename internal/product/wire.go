package product

import (
	"database/sql"

	"go.uber.org/zap"

	"barorder/internal/product/controller"
	"barorder/internal/product/repository"
	"barorder/internal/product/service"
)

type Module struct {
	Controller *controller.Controller
	Catalog    *service.CatalogService
}

func NewModule(db *sql.DB, lowStockThreshold int, logger *zap.Logger) *Module {
	repo := repository.NewMySQLRepository(db)
	catalog := service.NewCatalogService(repo, logger)
	return &Module{
		Controller: controller.NewController(catalog, lowStockThreshold, logger),
		Catalog:    catalog,
	}
}
