package dto

import "menvy/internal/domain"

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
	CostPrice   float64 `json:"costPrice"`
	Stock       int     `json:"stock"`
	MinStock    int     `json:"minStock,omitempty"`
	SKU         string  `json:"sku"`
	Size        string  `json:"size,omitempty"`
	Color       string  `json:"color,omitempty"`
}

type ProductDTO struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
	CostPrice   float64 `json:"costPrice"`
	Stock       int     `json:"stock"`
	MinStock    int     `json:"minStock"`
	SKU         string  `json:"sku"`
	Size        string  `json:"size,omitempty"`
	Color       string  `json:"color,omitempty"`
	IsActive    bool    `json:"isActive"`
	LowStock    bool    `json:"lowStock"`
}

type ListProductsResponse struct {
	Products []ProductDTO `json:"products"`
}

func NewProductDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Brand:       p.Brand,
		Price:       p.Price,
		CostPrice:   p.CostPrice,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		SKU:         p.SKU,
		Size:        p.Size,
		Color:       p.Color,
		IsActive:    p.IsActive,
		LowStock:    p.IsLowStock(),
	}
}
