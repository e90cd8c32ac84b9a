package catalog

import (
	"context"

	"menvy/internal/domain"
	"menvy/internal/dto"
)

type UseCase interface {
	ListProducts(ctx context.Context) (*dto.ListProductsResponse, error)
	ListLowStock(ctx context.Context) (*dto.ListProductsResponse, error)
	GetProduct(ctx context.Context, id int) (*dto.ProductDTO, error)
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductDTO, error)
}

type Service interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListLowStock(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type Repository interface {
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindLowStock(ctx context.Context) ([]domain.Product, error)
	Insert(ctx context.Context, p *domain.Product) (int, error)
}
