package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB configura una base de datos de prueba
// Espera que exista una BD MySQL en localhost:3306 llamada 'menvy_test'
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/menvy_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Verify connection
	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB limpia la BD de prueba
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"sales", "purchases", "settings", "products"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables crea las tablas necesarias para los tests
func SetupTestTables(t *testing.T, db *sql.DB) {
	createProductsTable := `
	CREATE TABLE IF NOT EXISTS products (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		category VARCHAR(100) NOT NULL DEFAULT '',
		brand VARCHAR(100) NOT NULL DEFAULT '',
		price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		cost_price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		stock INT NOT NULL DEFAULT 0,
		min_stock INT NOT NULL DEFAULT 5,
		sku VARCHAR(64) NOT NULL,
		size VARCHAR(50) NOT NULL DEFAULT '',
		color VARCHAR(50) NOT NULL DEFAULT '',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_sku (sku),
		INDEX idx_low_stock (is_active, stock)
	)`

	createSalesTable := `
	CREATE TABLE IF NOT EXISTS sales (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		bill_no VARCHAR(20) NOT NULL,
		product_id INT NOT NULL,
		product_name VARCHAR(255) NOT NULL,
		quantity INT NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		total DECIMAL(10,2) NOT NULL,
		seller_id INT NOT NULL,
		seller_name VARCHAR(100) NOT NULL,
		customer_name VARCHAR(100),
		customer_phone VARCHAR(30),
		payment_method VARCHAR(20) NOT NULL DEFAULT 'cash',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_bill_no (bill_no),
		INDEX idx_seller (seller_id),
		INDEX idx_product (product_id)
	)`

	createPurchasesTable := `
	CREATE TABLE IF NOT EXISTS purchases (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		purchase_no VARCHAR(20) NOT NULL,
		product_id INT NOT NULL,
		product_name VARCHAR(255) NOT NULL,
		quantity INT NOT NULL,
		cost_price DECIMAL(10,2) NOT NULL,
		total DECIMAL(10,2) NOT NULL,
		supplier_name VARCHAR(100) NOT NULL,
		supplier_phone VARCHAR(30),
		supplier_address VARCHAR(255),
		created_by INT NOT NULL,
		created_by_name VARCHAR(100) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_purchase_no (purchase_no),
		INDEX idx_product (product_id)
	)`

	createSettingsTable := `
	CREATE TABLE IF NOT EXISTS settings (
		id INT NOT NULL PRIMARY KEY,
		store_name VARCHAR(100) NOT NULL,
		store_address VARCHAR(255) NOT NULL DEFAULT '',
		store_phone VARCHAR(30) NOT NULL DEFAULT '',
		store_email VARCHAR(150) NOT NULL DEFAULT '',
		vat_number VARCHAR(50) NOT NULL DEFAULT '',
		currency VARCHAR(10) NOT NULL DEFAULT 'BDT',
		timezone VARCHAR(50) NOT NULL DEFAULT 'Asia/Dhaka',
		date_format VARCHAR(20) NOT NULL DEFAULT 'DD/MM/YYYY',
		language VARCHAR(10) NOT NULL DEFAULT 'en',
		receipt_footer VARCHAR(255) NOT NULL DEFAULT '',
		show_vat TINYINT(1) NOT NULL DEFAULT 1,
		vat_rate DECIMAL(5,2) NOT NULL DEFAULT 0.00,
		auto_print TINYINT(1) NOT NULL DEFAULT 0,
		email_notifications TINYINT(1) NOT NULL DEFAULT 1,
		sms_notifications TINYINT(1) NOT NULL DEFAULT 0,
		low_stock_alerts TINYINT(1) NOT NULL DEFAULT 1,
		daily_reports TINYINT(1) NOT NULL DEFAULT 1,
		session_timeout_hours INT NOT NULL DEFAULT 24,
		max_login_attempts INT NOT NULL DEFAULT 5,
		lockout_minutes INT NOT NULL DEFAULT 30,
		enable_whatsapp TINYINT(1) NOT NULL DEFAULT 0,
		whatsapp_api_key VARCHAR(255) NOT NULL DEFAULT '',
		whatsapp_instance_id VARCHAR(100) NOT NULL DEFAULT '',
		whatsapp_message TEXT,
		business_hours JSON,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"products", createProductsTable},
		{"sales", createSalesTable},
		{"purchases", createPurchasesTable},
		{"settings", createSettingsTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}

// InsertTestProduct inserta un producto y devuelve su id
func InsertTestProduct(t *testing.T, db *sql.DB, name, sku string, price, costPrice float64, stock, minStock int) int {
	result, err := db.Exec(`
		INSERT INTO products (name, description, category, brand, price, cost_price, stock, min_stock, sku, is_active)
		VALUES (?, '', 'Shirts', 'Menvy', ?, ?, ?, ?, ?, 1)
	`, name, price, costPrice, stock, minStock, sku)
	if err != nil {
		t.Fatalf("failed to insert test product: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get product id: %v", err)
	}

	return int(id)
}
