package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"barorder/internal/domain"
	"barorder/internal/errors"
)

type FulfillmentService struct {
	db        TransactionManager
	tables    TableRepository
	orders    OrderRepository
	items     OrderItemRepository
	logger    *zap.Logger
	txTimeout time.Duration
}

func NewFulfillmentService(
	db TransactionManager,
	tables TableRepository,
	orders OrderRepository,
	items OrderItemRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *FulfillmentService {
	return &FulfillmentService{
		db:        db,
		tables:    tables,
		orders:    orders,
		items:     items,
		logger:    logger,
		txTimeout: txTimeout,
	}
}

// ListActiveOrders returns every unpaid order with its table number and
// items, oldest first.
func (s *FulfillmentService) ListActiveOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.load(ctx, domain.ActiveStatuses)
	if err != nil {
		return nil, errors.NewRemoteCallError("Failed to load orders", err)
	}
	return domain.ActiveOrders(orders), nil
}

// ListPaidOrders returns every completed order with its items.
func (s *FulfillmentService) ListPaidOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.load(ctx, []domain.OrderStatus{domain.OrderStatusPaid})
	if err != nil {
		return nil, errors.NewRemoteCallError("Failed to load sales", err)
	}
	return orders, nil
}

func (s *FulfillmentService) load(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error) {
	orders, err := s.orders.FindByStatuses(ctx, statuses)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	items, err := s.items.FindByOrderIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items = items[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []domain.OrderItem{}
		}
	}

	return orders, nil
}

// AdvanceStatus moves an order one step along PENDING, PREPARING, READY,
// PAID. Any other target is an invalid transition. Once the last active
// order of a table is paid, the table becomes AVAILABLE again.
func (s *FulfillmentService) AdvanceStatus(ctx context.Context, orderID uint, next domain.OrderStatus) error {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	order, err := s.orders.FindByIDForUpdate(txCtx, tx, orderID)
	if err != nil {
		return err
	}

	if !order.Status.CanAdvanceTo(next) {
		s.logger.Warn("rejected status change",
			zap.Uint("orderId", orderID),
			zap.String("from", string(order.Status)),
			zap.String("to", string(next)),
		)
		return errors.NewInvalidTransitionError(string(order.Status), string(next))
	}

	if err := s.orders.UpdateStatus(txCtx, tx, orderID, next); err != nil {
		return err
	}

	freed := false
	if next == domain.OrderStatusPaid {
		remaining, err := s.orders.CountActiveByTable(txCtx, tx, order.TableID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			if err := s.tables.UpdateStatus(txCtx, tx, order.TableID, domain.TableStatusAvailable); err != nil {
				return err
			}
			freed = true
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return err
	}

	s.logger.Info("order status advanced",
		zap.Uint("orderId", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)),
		zap.Bool("tableFreed", freed),
	)

	return nil
}
