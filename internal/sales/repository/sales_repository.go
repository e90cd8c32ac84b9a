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

type MySQLSaleRepository struct {
	db *sql.DB
}

func NewMySQLSaleRepository(db *sql.DB) *MySQLSaleRepository {
	return &MySQLSaleRepository{db: db}
}

// Insert writes the immutable sale record inside the caller's transaction.
// A unique-index rejection on bill_no surfaces as DuplicateNumberError so the
// recording service can regenerate the number.
func (r *MySQLSaleRepository) Insert(ctx context.Context, tx *sql.Tx, sale *domain.Sale) error {
	query := `
		INSERT INTO sales
			(bill_no, product_id, product_name, quantity, price, total,
			 seller_id, seller_name, customer_name, customer_phone,
			 payment_method, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		sale.BillNo, sale.ProductID, sale.ProductName, sale.Quantity, sale.Price, sale.Total,
		sale.SellerID, sale.SellerName, sale.CustomerName, sale.CustomerPhone,
		sale.PaymentMethod, sale.CreatedAt,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return apperrors.NewDuplicateNumberError(sale.BillNo)
		}
		return fmt.Errorf("inserting sale: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	sale.ID = lastInsertID

	return nil
}

func (r *MySQLSaleRepository) FindAll(ctx context.Context, sellerID *int) ([]domain.Sale, error) {
	query := `
		SELECT id, bill_no, product_id, product_name, quantity, price, total,
		       seller_id, seller_name, customer_name, customer_phone,
		       payment_method, created_at
		FROM sales
	`
	var args []interface{}
	if sellerID != nil {
		query += ` WHERE seller_id = ?`
		args = append(args, *sellerID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sales: %w", err)
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		var s domain.Sale
		err := rows.Scan(
			&s.ID, &s.BillNo, &s.ProductID, &s.ProductName, &s.Quantity, &s.Price, &s.Total,
			&s.SellerID, &s.SellerName, &s.CustomerName, &s.CustomerPhone,
			&s.PaymentMethod, &s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning sale row: %w", err)
		}
		sales = append(sales, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sale rows: %w", err)
	}

	return sales, nil
}

// Delete removes a ledger row only. Stock is deliberately not restored.
func (r *MySQLSaleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting sale: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("sale with id %d not found", id))
	}

	return nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
