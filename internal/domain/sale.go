package domain

import "time"

const (
	PaymentMethodCash          = "cash"
	PaymentMethodCard          = "card"
	PaymentMethodMobileBanking = "mobile_banking"
)

// Sale is an immutable ledger record. Corrections require new records,
// never edits.
type Sale struct {
	ID            int64
	BillNo        string
	ProductID     int
	ProductName   string
	Quantity      int
	Price         float64
	Total         float64
	SellerID      int
	SellerName    string
	CustomerName  *string
	CustomerPhone *string
	PaymentMethod string
	CreatedAt     time.Time
}

func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodMobileBanking:
		return true
	}
	return false
}
