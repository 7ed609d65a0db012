package cart

import (
	"go.uber.org/zap"

	"barorder/internal/cart/controller"
	"barorder/internal/cart/session"
	"barorder/internal/config"
)

type Module struct {
	Controller *controller.Controller
	Sessions   *session.Store
}

func NewModule(products controller.ProductLookup, checkout controller.CheckoutUseCase, cfg config.OrderingConfig, logger *zap.Logger) *Module {
	sessions := session.NewStore(cfg.SessionIdleTTL)
	return &Module{
		Controller: controller.NewController(sessions, products, checkout, cfg.MaxTableNumber, logger),
		Sessions:   sessions,
	}
}
