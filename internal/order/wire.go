package order

import (
	"database/sql"

	"go.uber.org/zap"

	"barorder/internal/config"
	"barorder/internal/order/controller"
	"barorder/internal/order/feed"
	orderrepo "barorder/internal/order/repository"
	"barorder/internal/order/service"
	"barorder/internal/order/usecase"
	tablerepo "barorder/internal/table/repository"
)

type Module struct {
	Checkout    *usecase.CheckoutUseCase
	Fulfillment *service.FulfillmentService
	Controller  *controller.FulfillmentController
	Watcher     *feed.Watcher
	Feed        *feed.Handler
}

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *Module {
	tableRepo := tablerepo.NewMySQLTableRepository(db)
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	orderItemRepo := orderrepo.NewMySQLOrderItemRepository(db)

	checkoutSvc := service.NewCheckoutService(
		db,
		tableRepo,
		orderRepo,
		orderItemRepo,
		logger,
		cfg.Ordering.CheckoutTxTimeout,
	)
	fulfillmentSvc := service.NewFulfillmentService(
		db,
		tableRepo,
		orderRepo,
		orderItemRepo,
		logger,
		cfg.Ordering.CheckoutTxTimeout,
	)

	watcher := feed.NewWatcher(fulfillmentSvc, cfg.Fulfillment.PollInterval, logger)

	advance := usecase.NewAdvanceStatusUseCase(fulfillmentSvc, watcher, logger, cfg.Ordering.MaxRetryAttempts)

	return &Module{
		Checkout:    usecase.NewCheckoutUseCase(checkoutSvc, watcher, logger, cfg.Ordering.MaxRetryAttempts),
		Fulfillment: fulfillmentSvc,
		Controller:  controller.NewFulfillmentController(fulfillmentSvc, advance, logger),
		Watcher:     watcher,
		Feed:        feed.NewHandler(watcher, logger),
	}
}
