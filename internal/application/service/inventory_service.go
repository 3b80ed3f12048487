package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swechhitarimal/SMS/internal/domain/entity"
	"github.com/swechhitarimal/SMS/internal/domain/repository"
	"github.com/swechhitarimal/SMS/pkg/apperror"
)

// DefaultMinStock is the minimum-stock threshold applied when none is given.
const DefaultMinStock = 5

// InventoryService handles product inventory operations
type InventoryService struct {
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewInventoryService creates a new inventory service
func NewInventoryService(productRepo repository.ProductRepository) *InventoryService {
	return &InventoryService{
		productRepo: productRepo,
		now:         time.Now,
	}
}

// WithClock overrides the clock used for record timestamps.
func (s *InventoryService) WithClock(now func() time.Time) *InventoryService {
	s.now = now
	return s
}

// ListProducts lists products, optionally filtered by a search term matched
// against name and category, and by an exact category.
func (s *InventoryService) ListProducts(ctx context.Context, search, category string) ([]entity.Product, error) {
	products, err := s.productRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if search == "" && category == "" {
		return products, nil
	}

	term := strings.ToLower(search)
	filtered := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Category), term) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// GetProduct retrieves a product by ID
func (s *InventoryService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	products, err := s.productRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, apperror.NewNotFoundError("Product")
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name        string
	Category    string
	Price       float64
	Cost        float64
	Stock       int
	MinStock    int
	Supplier    string
	Description string
}

// CreateProduct creates a new product. Name and a positive price are
// required; cost defaults to 0 and the minimum-stock threshold to
// DefaultMinStock.
func (s *InventoryService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Name == "" || input.Price <= 0 {
		return nil, apperror.NewBadRequestError("Product name and price are required")
	}
	if input.Stock < 0 {
		return nil, apperror.NewBadRequestError("Stock cannot be negative")
	}

	minStock := input.MinStock
	if minStock <= 0 {
		minStock = DefaultMinStock
	}
	cost := input.Cost
	if cost < 0 {
		cost = 0
	}

	products, err := s.productRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	product := entity.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Cost:        cost,
		Stock:       input.Stock,
		MinStock:    minStock,
		Supplier:    input.Supplier,
		Description: input.Description,
		CreatedAt:   s.now(),
	}

	products = append(products, product)
	if err := s.productRepo.Save(ctx, products); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID          string
	Name        *string
	Category    *string
	Price       *float64
	Cost        *float64
	Stock       *int
	MinStock    *int
	Supplier    *string
	Description *string
}

// UpdateProduct updates a product
func (s *InventoryService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	products, err := s.productRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID != input.ID {
			continue
		}

		p := &products[i]
		if input.Name != nil {
			if *input.Name == "" {
				return nil, apperror.NewBadRequestError("Product name cannot be empty")
			}
			p.Name = *input.Name
		}
		if input.Category != nil {
			p.Category = *input.Category
		}
		if input.Price != nil {
			if *input.Price <= 0 {
				return nil, apperror.NewBadRequestError("Product price must be positive")
			}
			p.Price = *input.Price
		}
		if input.Cost != nil {
			p.Cost = *input.Cost
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				return nil, apperror.NewBadRequestError("Stock cannot be negative")
			}
			p.Stock = *input.Stock
		}
		if input.MinStock != nil {
			p.MinStock = *input.MinStock
		}
		if input.Supplier != nil {
			p.Supplier = *input.Supplier
		}
		if input.Description != nil {
			p.Description = *input.Description
		}
		p.UpdatedAt = s.now()

		if err := s.productRepo.Save(ctx, products); err != nil {
			return nil, err
		}
		return p, nil
	}

	return nil, apperror.NewNotFoundError("Product")
}

// DeleteProduct removes a product from the inventory. Past sales keep their
// recorded line items; analytics falls back to the default category for them.
func (s *InventoryService) DeleteProduct(ctx context.Context, id string) error {
	products, err := s.productRepo.Load(ctx)
	if err != nil {
		return err
	}

	remaining := make([]entity.Product, 0, len(products))
	found := false
	for _, p := range products {
		if p.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !found {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Save(ctx, remaining)
}

// ListLowStock returns products at or below their minimum-stock threshold.
func (s *InventoryService) ListLowStock(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	low := make([]entity.Product, 0)
	for _, p := range products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}

// ListCategories returns the distinct non-empty categories in use, sorted.
func (s *InventoryService) ListCategories(ctx context.Context) ([]string, error) {
	products, err := s.productRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}
