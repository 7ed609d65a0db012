package repository

import (
	"context"
	"database/sql"
	"fmt"

	"barorder/internal/domain"
	"barorder/internal/errors"
)

type MySQLTableRepository struct {
	db *sql.DB
}

func NewMySQLTableRepository(db *sql.DB) *MySQLTableRepository {
	return &MySQLTableRepository{db: db}
}

// FindByNumberForUpdate locks the table row so concurrent checkouts for the
// same number serialize. A miss is a NotFoundError.
func (r *MySQLTableRepository) FindByNumberForUpdate(ctx context.Context, tx *sql.Tx, number int) (*domain.Table, error) {
	query := `
		SELECT id, number, status, created_at, updated_at
		FROM tables
		WHERE number = ?
		FOR UPDATE
	`

	var t domain.Table
	err := tx.QueryRowContext(ctx, query, number).Scan(&t.ID, &t.Number, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("table %d not found", number))
	}
	if err != nil {
		return nil, fmt.Errorf("querying table by number: %w", err)
	}

	return &t, nil
}

func (r *MySQLTableRepository) Insert(ctx context.Context, tx *sql.Tx, number int, status domain.TableStatus) (int, error) {
	query := `INSERT INTO tables (number, status) VALUES (?, ?)`

	result, err := tx.ExecContext(ctx, query, number, status)
	if err != nil {
		return 0, fmt.Errorf("inserting table: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(lastInsertID), nil
}

func (r *MySQLTableRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, id int, status domain.TableStatus) error {
	query := `UPDATE tables SET status = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating table status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("table with id %d not found", id))
	}

	return nil
}
