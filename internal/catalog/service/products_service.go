package service

import (
	"context"
	"strings"
	"time"

	"menvy/internal/domain"
	apperrors "menvy/internal/errors"
)

type Repository interface {
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindLowStock(ctx context.Context) ([]domain.Product, error)
	Insert(ctx context.Context, p *domain.Product) (int, error)
}

type ProductService struct {
	repo Repository
}

func NewService(repo Repository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *ProductService) ListLowStock(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindLowStock(ctx)
}

func (s *ProductService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(p.Name) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(p.SKU) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "sku", Message: "sku is required"})
	}
	if p.Price < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price must be non-negative"})
	}
	if p.CostPrice < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "costPrice", Message: "costPrice must be non-negative"})
	}
	if p.Stock < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "stock", Message: "stock must be non-negative"})
	}
	if p.MinStock < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "minStock", Message: "minStock must be non-negative"})
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	p.SKU = domain.NormalizeSKU(p.SKU)
	if p.MinStock == 0 {
		p.MinStock = domain.DefaultMinStock
	}
	p.IsActive = true

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	id, err := s.repo.Insert(ctx, &p)
	if err != nil {
		return nil, err
	}
	p.ID = id

	return &p, nil
}
