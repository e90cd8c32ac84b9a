package domain

import "time"

type Supplier struct {
	Name    string
	Phone   *string
	Address *string
}

// Purchase is an immutable ledger record of incoming stock.
type Purchase struct {
	ID            int64
	PurchaseNo    string
	ProductID     int
	ProductName   string
	Quantity      int
	CostPrice     float64
	Total         float64
	Supplier      Supplier
	CreatedBy     int
	CreatedByName string
	CreatedAt     time.Time
}
