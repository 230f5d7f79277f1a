package core

import (
	"context"

	"github.com/Kennyy02/Samgyupmasaya/internal/product/domain/dto"
	"github.com/Kennyy02/Samgyupmasaya/internal/product/domain/models"
)

const WaitTime = 10

// IProductRepo is implemented once per product set; each implementation is
// bound to its own table at compile time.
type IProductRepo interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (models.Product, error)
	Create(ctx context.Context, req dto.ProductRequest) (int64, error)
	Update(ctx context.Context, id int64, req dto.ProductRequest) error
	Delete(ctx context.Context, id int64) error
	SearchByName(ctx context.Context, pattern string) ([]models.SearchResult, error)
	// DecrementStock subtracts quantity atomically and returns the new stock
	// value; it fails with ErrInsufficientStock instead of going negative.
	DecrementStock(ctx context.Context, id int64, quantity int) (int, error)
	Count(ctx context.Context) (int, error)
}

type ICategoryRepo interface {
	List(ctx context.Context) ([]models.Category, error)
	GetOrCreate(ctx context.Context, name string) (int64, error)
}
