package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"barorder/internal/domain"
	"barorder/internal/errors"
	"barorder/internal/infrastructure/mysql"
)

type CheckoutService struct {
	db        TransactionManager
	tables    TableRepository
	orders    OrderRepository
	items     OrderItemRepository
	logger    *zap.Logger
	txTimeout time.Duration
}

func NewCheckoutService(
	db TransactionManager,
	tables TableRepository,
	orders OrderRepository,
	items OrderItemRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *CheckoutService {
	return &CheckoutService{
		db:        db,
		tables:    tables,
		orders:    orders,
		items:     items,
		logger:    logger,
		txTimeout: txTimeout,
	}
}

// PlaceOrder stores a cart as a PENDING order for the table in a single
// transaction. The table row is created on first use and is left OCCUPIED.
// Line prices are the ones captured in the cart.
func (s *CheckoutService) PlaceOrder(ctx context.Context, tableNumber int, cart []domain.CartItem) (*domain.Order, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	// MySQL ignores rollback after commit.
	defer tx.Rollback()

	tableID, err := s.occupyTable(txCtx, tx, tableNumber)
	if err != nil {
		s.logger.Error("failed to occupy table", zap.Int("table", tableNumber), zap.Error(err))
		return nil, err
	}

	order := domain.Order{
		TableID:     tableID,
		TableNumber: tableNumber,
		Status:      domain.OrderStatusPending,
		Total:       domain.CartTotal(cart),
	}

	order.ID, err = s.orders.Insert(txCtx, tx, order)
	if err != nil {
		s.logger.Error("failed to insert order", zap.Int("table", tableNumber), zap.Error(err))
		return nil, err
	}

	for _, line := range cart {
		product := line.Product
		item := domain.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
			Product:   &product,
		}

		item.ID, err = s.items.Insert(txCtx, tx, item)
		if err != nil {
			s.logger.Error("failed to insert order item", zap.Uint("orderId", order.ID), zap.Int("productId", product.ID), zap.Error(err))
			return nil, err
		}
		order.Items = append(order.Items, item)
	}

	// Timestamps come from the store so they match what the fulfillment
	// list and analytics later read.
	stored, err := s.orders.FindByIDForUpdate(txCtx, tx, order.ID)
	if err != nil {
		s.logger.Error("failed to read back order", zap.Uint("orderId", order.ID), zap.Error(err))
		return nil, err
	}
	order.CreatedAt, order.UpdatedAt = stored.CreatedAt, stored.UpdatedAt

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", order.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order placed",
		zap.Uint("orderId", order.ID),
		zap.Int("table", tableNumber),
		zap.Int("lines", len(order.Items)),
		zap.String("total", order.Total.StringFixed(2)),
	)

	return &order, nil
}

// occupyTable locks the table row, creating it when the number has never
// been used, and marks it OCCUPIED.
func (s *CheckoutService) occupyTable(ctx context.Context, tx *sql.Tx, number int) (int, error) {
	table, err := s.tables.FindByNumberForUpdate(ctx, tx, number)
	if err == nil {
		if table.Status != domain.TableStatusOccupied {
			if err := s.tables.UpdateStatus(ctx, tx, table.ID, domain.TableStatusOccupied); err != nil {
				return 0, err
			}
		}
		return table.ID, nil
	}
	if _, ok := errors.IsNotFoundError(err); !ok {
		return 0, err
	}

	id, err := s.tables.Insert(ctx, tx, number, domain.TableStatusOccupied)
	if err == nil {
		return id, nil
	}
	if !mysql.IsDuplicateEntry(err) {
		return 0, err
	}

	// Another checkout created the row first.
	table, err = s.tables.FindByNumberForUpdate(ctx, tx, number)
	if err != nil {
		return 0, err
	}
	if table.Status != domain.TableStatusOccupied {
		if err := s.tables.UpdateStatus(ctx, tx, table.ID, domain.TableStatusOccupied); err != nil {
			return 0, err
		}
	}
	return table.ID, nil
}
