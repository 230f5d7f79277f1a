package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kennyy02/Samgyupmasaya/internal/product/app/core"
	"github.com/Kennyy02/Samgyupmasaya/internal/product/domain/dto"
	"github.com/Kennyy02/Samgyupmasaya/internal/product/domain/models"
	"github.com/Kennyy02/Samgyupmasaya/pkg/logger"
)

// ProductService fronts the two catalog sets. Every operation picks its
// repository through the sealed Set variant.
type ProductService struct {
	repos      map[models.Set]core.IProductRepo
	categories core.ICategoryRepo
	mylog      *logger.Logger
}

func NewProductService(online, onsite core.IProductRepo, categories core.ICategoryRepo, mylog *logger.Logger) *ProductService {
	return &ProductService{
		repos: map[models.Set]core.IProductRepo{
			models.SetOnline: online,
			models.SetOnsite: onsite,
		},
		categories: categories,
		mylog:      mylog,
	}
}

func (s *ProductService) List(ctx context.Context, set models.Set) ([]models.Product, error) {
	return s.repos[set].List(ctx)
}

func (s *ProductService) Get(ctx context.Context, set models.Set, id int64) (models.Product, error) {
	return s.repos[set].Get(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, set models.Set, req dto.ProductRequest) (int64, error) {
	if strings.TrimSpace(req.Name) == "" {
		return 0, fmt.Errorf("%w: name", core.ErrFieldIsEmpty)
	}
	if req.Price <= 0 {
		return 0, fmt.Errorf("%w: price must be positive", core.ErrValidation)
	}
	if req.Stock != nil && *req.Stock < 0 {
		return 0, fmt.Errorf("%w: stock cannot be negative", core.ErrValidation)
	}

	id, err := s.repos[set].Create(ctx, req)
	if err != nil {
		s.mylog.Error("", "product_insert_failed", "Failed to create product", err)
		return 0, err
	}
	s.mylog.Info("", "product_created", fmt.Sprintf("Product %d (%s) added to %s catalog", id, req.Name, set))
	return id, nil
}

func (s *ProductService) Update(ctx context.Context, set models.Set, id int64, req dto.ProductRequest) error {
	if req.Stock != nil && *req.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", core.ErrValidation)
	}
	return s.repos[set].Update(ctx, id, req)
}

func (s *ProductService) Delete(ctx context.Context, set models.Set, id int64) error {
	return s.repos[set].Delete(ctx, id)
}

// Search spans both sets; the order service filters by exact name and type.
func (s *ProductService) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query 'q' is required", core.ErrValidation)
	}

	pattern := "%" + query + "%"
	online, err := s.repos[models.SetOnline].SearchByName(ctx, pattern)
	if err != nil {
		return nil, err
	}
	onsite, err := s.repos[models.SetOnsite].SearchByName(ctx, pattern)
	if err != nil {
		return nil, err
	}
	return append(online, onsite...), nil
}

// DecrementStock is the workflow engine's stock contract: atomic, rejected
// when the quantity exceeds the remaining stock.
func (s *ProductService) DecrementStock(ctx context.Context, set models.Set, id int64, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("%w: quantity must be positive", core.ErrValidation)
	}

	newStock, err := s.repos[set].DecrementStock(ctx, id, quantity)
	if err != nil {
		return 0, err
	}
	s.mylog.Info("", "stock_decremented", fmt.Sprintf("Product %d (%s) stock reduced by %d to %d", id, set, quantity, newStock))
	return newStock, nil
}

func (s *ProductService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *ProductService) Counts(ctx context.Context) (dto.ProductCounts, error) {
	online, err := s.repos[models.SetOnline].Count(ctx)
	if err != nil {
		return dto.ProductCounts{}, err
	}
	onsite, err := s.repos[models.SetOnsite].Count(ctx)
	if err != nil {
		return dto.ProductCounts{}, err
	}
	return dto.ProductCounts{OnlineItems: online, OnsiteItems: onsite}, nil
}
