package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"barorder/internal/domain"
	"barorder/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `o.id, o.table_id, t.number, o.status, o.total, o.created_at, o.updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.TableID, &o.TableNumber, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error) {
	query := `INSERT INTO orders (table_id, status, total) VALUES (?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, order.TableID, order.Status, order.Total)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// FindByIDForUpdate locks the order row. Items are not loaded.
func (r *MySQLOrderRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN tables t ON t.id = o.table_id
		WHERE o.id = ?
		FOR UPDATE
	`

	order, err := scanOrder(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return &order, nil
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status domain.OrderStatus) error {
	query := `UPDATE orders SET status = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

// CountActiveByTable counts unpaid orders on a table.
func (r *MySQLOrderRepository) CountActiveByTable(ctx context.Context, tx *sql.Tx, tableID int) (int, error) {
	query := `SELECT COUNT(*) FROM orders WHERE table_id = ? AND status <> ?`

	var count int
	if err := tx.QueryRowContext(ctx, query, tableID, domain.OrderStatusPaid).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting active orders: %w", err)
	}

	return count, nil
}

// FindByStatuses returns orders in any of statuses, oldest first, without
// their items.
func (r *MySQLOrderRepository) FindByStatuses(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error) {
	orders := []domain.Order{}
	if len(statuses) == 0 {
		return orders, nil
	}

	args := make([]interface{}, len(statuses))
	for i, s := range statuses {
		args[i] = s
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN tables t ON t.id = o.table_id
		WHERE o.status IN (` + placeholders(len(statuses)) + `)
		ORDER BY o.created_at ASC, o.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
