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

const productColumns = `id, name, description, category, brand, price, cost_price,
	       stock, min_stock, sku, size, color, is_active, created_at, updated_at`

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = ?`, productColumns)

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Brand, &p.Price, &p.CostPrice,
		&p.Stock, &p.MinStock, &p.SKU, &p.Size, &p.Color, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return &p, nil
}

func (r *MySQLRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY created_at DESC`, productColumns)
	return r.queryProducts(ctx, query)
}

func (r *MySQLRepository) FindLowStock(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products
		WHERE is_active = 1 AND stock <= min_stock
		ORDER BY stock ASC`, productColumns)
	return r.queryProducts(ctx, query)
}

func (r *MySQLRepository) Insert(ctx context.Context, p *domain.Product) (int, error) {
	query := `
		INSERT INTO products
			(name, description, category, brand, price, cost_price, stock,
			 min_stock, sku, size, color, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Category, p.Brand, p.Price, p.CostPrice, p.Stock,
		p.MinStock, p.SKU, p.Size, p.Color, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return 0, apperrors.NewConflictError(fmt.Sprintf("sku %q already exists", p.SKU))
		}
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(lastInsertID), nil
}

// ConditionalDecrementStock applies `stock = stock - quantity` only while
// sufficient stock remains. A false return with nil error means the guard
// failed at write time; the row was not touched.
func (r *MySQLRepository) ConditionalDecrementStock(ctx context.Context, tx *sql.Tx, productID, quantity int) (bool, error) {
	query := `UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?`

	result, err := tx.ExecContext(ctx, query, quantity, productID, quantity)
	if err != nil {
		return false, fmt.Errorf("decrementing stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// IncrementStockAndSetCostPrice adds incoming stock and overwrites the cost
// price with the latest purchase's unit cost. No guard is needed; increments
// cannot violate the stock floor.
func (r *MySQLRepository) IncrementStockAndSetCostPrice(ctx context.Context, tx *sql.Tx, productID, quantity int, costPrice float64) (bool, error) {
	query := `UPDATE products SET stock = stock + ?, cost_price = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, quantity, costPrice, productID)
	if err != nil {
		return false, fmt.Errorf("incrementing stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *MySQLRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Category, &p.Brand, &p.Price, &p.CostPrice,
			&p.Stock, &p.MinStock, &p.SKU, &p.Size, &p.Color, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
