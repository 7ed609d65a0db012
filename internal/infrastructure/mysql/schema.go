package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	driver "github.com/go-sql-driver/mysql"
)

const (
	errDuplicateEntry  = 1062
	errDeadlock        = 1213
	errLockWaitTimeout = 1205
)

// Tables in dependency order.
var Tables = []string{"tables", "products", "orders", "order_items"}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS tables (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		number INT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'AVAILABLE',
		created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
		updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
		UNIQUE KEY uq_tables_number (number)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NULL,
		price DECIMAL(10,2) NOT NULL,
		category VARCHAR(20) NOT NULL,
		stock INT NOT NULL DEFAULT 0,
		created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
		updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
		CONSTRAINT chk_products_price CHECK (price >= 0),
		CONSTRAINT chk_products_stock CHECK (stock >= 0),
		INDEX idx_products_name (name)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		table_id INT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		total DECIMAL(10,2) NOT NULL,
		created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
		updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
		FOREIGN KEY (table_id) REFERENCES tables(id),
		INDEX idx_orders_status (status),
		INDEX idx_orders_created (created_at)
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_id INT UNSIGNED NOT NULL,
		product_id INT NULL,
		quantity INT NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
		CONSTRAINT chk_order_items_quantity CHECK (quantity >= 1),
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE SET NULL,
		INDEX idx_order_items_order (order_id)
	)`,
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}

func IsDuplicateEntry(err error) bool {
	return hasErrorNumber(err, errDuplicateEntry)
}

// IsRetryable reports deadlocks and lock wait timeouts, after which the whole
// transaction has been rolled back and can be replayed.
func IsRetryable(err error) bool {
	return hasErrorNumber(err, errDeadlock, errLockWaitTimeout)
}

func hasErrorNumber(err error, numbers ...uint16) bool {
	var mysqlErr *driver.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	for _, n := range numbers {
		if mysqlErr.Number == n {
			return true
		}
	}
	return false
}
