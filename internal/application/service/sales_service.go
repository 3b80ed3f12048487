package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swechhitarimal/SMS/internal/domain/entity"
	"github.com/swechhitarimal/SMS/internal/domain/enum"
	"github.com/swechhitarimal/SMS/internal/domain/repository"
	"github.com/swechhitarimal/SMS/pkg/apperror"
)

// SalesService records sales and serves the transaction history.
type SalesService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	now          func() time.Time
}

// NewSalesService creates a new sales service
func NewSalesService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *SalesService {
	return &SalesService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		now:          time.Now,
	}
}

// WithClock overrides the clock used for sale timestamps.
func (s *SalesService) WithClock(now func() time.Time) *SalesService {
	s.now = now
	return s
}

// ListSales lists sales newest first, optionally filtered by a search term
// matched against customer name (case-insensitive) or sale ID.
func (s *SalesService) ListSales(ctx context.Context, search string) ([]entity.Sale, error) {
	sales, err := s.saleRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return sales, nil
	}

	term := strings.ToLower(search)
	filtered := make([]entity.Sale, 0, len(sales))
	for _, sale := range sales {
		if strings.Contains(strings.ToLower(sale.CustomerName), term) ||
			strings.Contains(sale.ID, search) {
			filtered = append(filtered, sale)
		}
	}
	return filtered, nil
}

// GetSale retrieves a sale by ID
func (s *SalesService) GetSale(ctx context.Context, id string) (*entity.Sale, error) {
	sales, err := s.saleRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		if sales[i].ID == id {
			return &sales[i], nil
		}
	}
	return nil, apperror.NewNotFoundError("Sale")
}

// SaleItemInput is one requested line of a new sale.
type SaleItemInput struct {
	ProductID string
	Quantity  int
}

// RecordSaleInput represents the input for recording a sale.
type RecordSaleInput struct {
	CustomerName  string
	CustomerEmail string
	Items         []SaleItemInput
	PaymentMethod enum.PaymentMethod
	Notes         string
}

// RecordSale completes a sale: prices the requested lines from the current
// inventory, decrements stock, prepends the sale to the history, and
// registers the customer when a new email is supplied. Line totals are unit
// price times quantity; the sale total is the sum of line totals.
func (s *SalesService) RecordSale(ctx context.Context, input *RecordSaleInput) (*entity.Sale, error) {
	if input.CustomerName == "" || len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Customer name and at least one item are required")
	}

	method := input.PaymentMethod
	if method == "" {
		method = enum.PaymentCash
	}
	if !method.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}

	products, err := s.productRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(products))
	for i := range products {
		byID[products[i].ID] = i
	}

	sale := entity.Sale{
		ID:            uuid.New().String(),
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		Items:         make([]entity.SaleItem, 0, len(input.Items)),
		PaymentMethod: method,
		Notes:         input.Notes,
		Status:        entity.SaleStatusCompleted,
		CreatedAt:     s.now(),
	}

	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		i, ok := byID[line.ProductID]
		if !ok {
			return nil, apperror.NewNotFoundError("Product")
		}
		product := &products[i]
		if product.Stock < line.Quantity {
			return nil, apperror.NewConflictError("Insufficient stock for " + product.Name)
		}

		product.Stock -= line.Quantity
		item := entity.SaleItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
			Total:     product.Price * float64(line.Quantity),
		}
		sale.Items = append(sale.Items, item)
		sale.Total += item.Total
	}

	sales, err := s.saleRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	sales = append([]entity.Sale{sale}, sales...)

	if err := s.productRepo.Save(ctx, products); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sales); err != nil {
		return nil, err
	}

	if input.CustomerEmail != "" {
		if err := s.registerCustomer(ctx, &sale); err != nil {
			return nil, err
		}
	}
	return &sale, nil
}

// registerCustomer adds a customer record for a sale whose email is not yet
// known.
func (s *SalesService) registerCustomer(ctx context.Context, sale *entity.Sale) error {
	customers, err := s.customerRepo.Load(ctx)
	if err != nil {
		return err
	}
	for i := range customers {
		if customers[i].Email == sale.CustomerEmail {
			return nil
		}
	}

	customers = append(customers, entity.Customer{
		ID:        uuid.New().String(),
		Name:      sale.CustomerName,
		Email:     sale.CustomerEmail,
		CreatedAt: sale.CreatedAt,
	})
	return s.customerRepo.Save(ctx, customers)
}
