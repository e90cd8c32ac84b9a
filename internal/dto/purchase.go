package dto

import (
	"time"

	"menvy/internal/domain"
)

type RecordPurchaseInput struct {
	ProductID       int
	Quantity        int
	CostPrice       float64
	SupplierName    string
	SupplierPhone   *string
	SupplierAddress *string
	Actor           Actor
}

type RecordPurchaseRequest struct {
	ProductID       int     `json:"productId"`
	Quantity        int     `json:"quantity"`
	CostPrice       float64 `json:"costPrice"`
	SupplierName    string  `json:"supplierName"`
	SupplierPhone   *string `json:"supplierPhone,omitempty"`
	SupplierAddress *string `json:"supplierAddress,omitempty"`
}

type PurchaseResponse struct {
	ID              int64     `json:"id"`
	PurchaseNo      string    `json:"purchaseNo"`
	ProductID       int       `json:"productId"`
	ProductName     string    `json:"productName"`
	Quantity        int       `json:"quantity"`
	CostPrice       float64   `json:"costPrice"`
	Total           float64   `json:"total"`
	SupplierName    string    `json:"supplierName"`
	SupplierPhone   *string   `json:"supplierPhone,omitempty"`
	SupplierAddress *string   `json:"supplierAddress,omitempty"`
	CreatedBy       int       `json:"createdBy"`
	CreatedByName   string    `json:"createdByName"`
	CreatedAt       time.Time `json:"createdAt"`
}

func NewPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:              p.ID,
		PurchaseNo:      p.PurchaseNo,
		ProductID:       p.ProductID,
		ProductName:     p.ProductName,
		Quantity:        p.Quantity,
		CostPrice:       p.CostPrice,
		Total:           p.Total,
		SupplierName:    p.Supplier.Name,
		SupplierPhone:   p.Supplier.Phone,
		SupplierAddress: p.Supplier.Address,
		CreatedBy:       p.CreatedBy,
		CreatedByName:   p.CreatedByName,
		CreatedAt:       p.CreatedAt,
	}
}
