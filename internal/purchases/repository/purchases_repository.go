package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"menvy/internal/domain"
	apperrors "menvy/internal/errors"
)

type MySQLPurchaseRepository struct {
	db *sql.DB
}

func NewMySQLPurchaseRepository(db *sql.DB) *MySQLPurchaseRepository {
	return &MySQLPurchaseRepository{db: db}
}

// Insert writes the immutable purchase record inside the caller's
// transaction. A unique-index rejection on purchase_no surfaces as
// DuplicateNumberError.
func (r *MySQLPurchaseRepository) Insert(ctx context.Context, tx *sql.Tx, purchase *domain.Purchase) error {
	query := `
		INSERT INTO purchases
			(purchase_no, product_id, product_name, quantity, cost_price, total,
			 supplier_name, supplier_phone, supplier_address,
			 created_by, created_by_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		purchase.PurchaseNo, purchase.ProductID, purchase.ProductName,
		purchase.Quantity, purchase.CostPrice, purchase.Total,
		purchase.Supplier.Name, purchase.Supplier.Phone, purchase.Supplier.Address,
		purchase.CreatedBy, purchase.CreatedByName, purchase.CreatedAt,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return apperrors.NewDuplicateNumberError(purchase.PurchaseNo)
		}
		return fmt.Errorf("inserting purchase: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	purchase.ID = lastInsertID

	return nil
}

func (r *MySQLPurchaseRepository) FindAll(ctx context.Context) ([]domain.Purchase, error) {
	query := `
		SELECT id, purchase_no, product_id, product_name, quantity, cost_price, total,
		       supplier_name, supplier_phone, supplier_address,
		       created_by, created_by_name, created_at
		FROM purchases
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying purchases: %w", err)
	}
	defer rows.Close()

	var purchases []domain.Purchase
	for rows.Next() {
		var p domain.Purchase
		err := rows.Scan(
			&p.ID, &p.PurchaseNo, &p.ProductID, &p.ProductName, &p.Quantity, &p.CostPrice, &p.Total,
			&p.Supplier.Name, &p.Supplier.Phone, &p.Supplier.Address,
			&p.CreatedBy, &p.CreatedByName, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning purchase row: %w", err)
		}
		purchases = append(purchases, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchase rows: %w", err)
	}

	return purchases, nil
}

// Delete removes a ledger row only. Stock is deliberately not reduced.
func (r *MySQLPurchaseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM purchases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting purchase: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("purchase with id %d not found", id))
	}

	return nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
