package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"barorder/internal/infrastructure/mysql"
)

const defaultTestDSN = "root:@tcp(localhost:3306)/barorder_test?parseTime=true&loc=UTC&clientFoundRows=true"

// SetupTestDB opens the test database named by TEST_DATABASE_DSN and skips the
// test when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// SetupTestTables applies the service schema.
func SetupTestTables(t *testing.T, db *sql.DB) {
	t.Helper()

	if err := mysql.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to create tables: %v", err)
	}
}

// CleanupTestDB empties every table and closes db.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	for i := len(mysql.Tables) - 1; i >= 0; i-- {
		table := mysql.Tables[i]
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

func InsertTable(t *testing.T, db *sql.DB, number int, status string) int {
	t.Helper()

	res, err := db.Exec(`INSERT INTO tables (number, status) VALUES (?, ?)`, number, status)
	if err != nil {
		t.Fatalf("failed to insert table: %v", err)
	}
	id, _ := res.LastInsertId()
	return int(id)
}

func InsertProduct(t *testing.T, db *sql.DB, name, category string, price string, stock int) int {
	t.Helper()

	res, err := db.Exec(
		`INSERT INTO products (name, description, price, category, stock) VALUES (?, ?, ?, ?, ?)`,
		name, name+" description", price, category, stock,
	)
	if err != nil {
		t.Fatalf("failed to insert product: %v", err)
	}
	id, _ := res.LastInsertId()
	return int(id)
}

func InsertOrder(t *testing.T, db *sql.DB, tableID int, status string, total string, createdAt string) uint {
	t.Helper()

	res, err := db.Exec(
		`INSERT INTO orders (table_id, status, total, created_at) VALUES (?, ?, ?, ?)`,
		tableID, status, total, createdAt,
	)
	if err != nil {
		t.Fatalf("failed to insert order: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint(id)
}

func InsertOrderItem(t *testing.T, db *sql.DB, orderID uint, productID int, quantity int, price string) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO order_items (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?)`,
		orderID, productID, quantity, price,
	)
	if err != nil {
		t.Fatalf("failed to insert order item: %v", err)
	}
}
