package domain

import (
	"strings"
	"time"
)

const DefaultMinStock = 5

type Product struct {
	ID          int
	Name        string
	Description string
	Category    string
	Brand       string
	Price       float64
	CostPrice   float64
	Stock       int
	MinStock    int
	SKU         string
	Size        string
	Color       string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock reports whether the product is at or below its minimum
// threshold. Dashboards and alerting read this; stock mutations from sales
// and purchases are its only source of truth.
func (p Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// NormalizeSKU applies the canonical form used by the unique index.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}
