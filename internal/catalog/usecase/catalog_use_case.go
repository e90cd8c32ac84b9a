package usecase

import (
	"context"

	"menvy/internal/domain"
	"menvy/internal/dto"
)

type Service interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListLowStock(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type CatalogUseCase struct {
	service Service
}

func NewCatalogUseCase(service Service) *CatalogUseCase {
	return &CatalogUseCase{service: service}
}

func (uc *CatalogUseCase) ListProducts(ctx context.Context) (*dto.ListProductsResponse, error) {
	products, err := uc.service.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return toListResponse(products), nil
}

func (uc *CatalogUseCase) ListLowStock(ctx context.Context) (*dto.ListProductsResponse, error) {
	products, err := uc.service.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return toListResponse(products), nil
}

func (uc *CatalogUseCase) GetProduct(ctx context.Context, id int) (*dto.ProductDTO, error) {
	p, err := uc.service.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewProductDTO(*p)
	return &out, nil
}

func (uc *CatalogUseCase) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductDTO, error) {
	p, err := uc.service.CreateProduct(ctx, domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Brand:       req.Brand,
		Price:       req.Price,
		CostPrice:   req.CostPrice,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		SKU:         req.SKU,
		Size:        req.Size,
		Color:       req.Color,
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewProductDTO(*p)
	return &out, nil
}

func toListResponse(products []domain.Product) *dto.ListProductsResponse {
	dtos := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, dto.NewProductDTO(p))
	}
	return &dto.ListProductsResponse{Products: dtos}
}
