package service

import (
	"context"
	"database/sql"

	"barorder/internal/domain"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type TableRepository interface {
	FindByNumberForUpdate(ctx context.Context, tx *sql.Tx, number int) (*domain.Table, error)
	Insert(ctx context.Context, tx *sql.Tx, number int, status domain.TableStatus) (int, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id int, status domain.TableStatus) error
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error)
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Order, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status domain.OrderStatus) error
	CountActiveByTable(ctx context.Context, tx *sql.Tx, tableID int) (int, error)
	FindByStatuses(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error)
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error)
	FindByOrderIDs(ctx context.Context, orderIDs []uint) (map[uint][]domain.OrderItem, error)
}
