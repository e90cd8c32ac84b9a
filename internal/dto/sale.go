package dto

import (
	"time"

	"menvy/internal/domain"
)

// RecordSaleInput is the engine-level command for recording a sale. The unit
// price is never part of the input; it is snapshotted from the catalog to
// prevent price tampering.
type RecordSaleInput struct {
	ProductID     int
	Quantity      int
	CustomerName  *string
	CustomerPhone *string
	PaymentMethod string
	Actor         Actor
}

type RecordSaleRequest struct {
	ProductID     int     `json:"productId"`
	Quantity      int     `json:"quantity"`
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
}

type SaleResponse struct {
	ID            int64     `json:"id"`
	BillNo        string    `json:"billNo"`
	ProductID     int       `json:"productId"`
	ProductName   string    `json:"productName"`
	Quantity      int       `json:"quantity"`
	Price         float64   `json:"price"`
	Total         float64   `json:"total"`
	SellerID      int       `json:"sellerId"`
	SellerName    string    `json:"sellerName"`
	CustomerName  *string   `json:"customerName,omitempty"`
	CustomerPhone *string   `json:"customerPhone,omitempty"`
	PaymentMethod string    `json:"paymentMethod"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		BillNo:        s.BillNo,
		ProductID:     s.ProductID,
		ProductName:   s.ProductName,
		Quantity:      s.Quantity,
		Price:         s.Price,
		Total:         s.Total,
		SellerID:      s.SellerID,
		SellerName:    s.SellerName,
		CustomerName:  s.CustomerName,
		CustomerPhone: s.CustomerPhone,
		PaymentMethod: s.PaymentMethod,
		CreatedAt:     s.CreatedAt,
	}
}
