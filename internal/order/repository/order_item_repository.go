package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"barorder/internal/domain"
)

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

func (r *MySQLOrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error) {
	query := `INSERT INTO order_items (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, item.OrderID, item.ProductID, item.Quantity, item.Price)
	if err != nil {
		return 0, fmt.Errorf("inserting order item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// FindByOrderIDs loads the items of every order in orderIDs together with
// their current product. Items whose product has been deleted have a nil
// Product.
func (r *MySQLOrderItemRepository) FindByOrderIDs(ctx context.Context, orderIDs []uint) (map[uint][]domain.OrderItem, error) {
	items := make(map[uint][]domain.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return items, nil
	}

	args := make([]interface{}, len(orderIDs))
	for i, id := range orderIDs {
		args[i] = id
	}

	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, oi.created_at,
		       p.name, COALESCE(p.description, ''), p.price, p.category, p.stock, p.created_at, p.updated_at
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id IN (` + placeholders(len(orderIDs)) + `)
		ORDER BY oi.order_id ASC, oi.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item         domain.OrderItem
			productID    sql.NullInt64
			name         sql.NullString
			description  string
			price        decimal.NullDecimal
			category     sql.NullString
			stock        sql.NullInt64
			productAdded sql.NullTime
			productSaved sql.NullTime
		)

		err := rows.Scan(
			&item.ID, &item.OrderID, &productID, &item.Quantity, &item.Price, &item.CreatedAt,
			&name, &description, &price, &category, &stock, &productAdded, &productSaved,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order item row: %w", err)
		}

		if productID.Valid && name.Valid {
			item.ProductID = int(productID.Int64)
			item.Product = &domain.Product{
				ID:          item.ProductID,
				Name:        name.String,
				Description: description,
				Price:       price.Decimal,
				Category:    domain.Category(category.String),
				Stock:       int(stock.Int64),
				CreatedAt:   productAdded.Time,
				UpdatedAt:   productSaved.Time,
			}
		}

		items[item.OrderID] = append(items[item.OrderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return items, nil
}
