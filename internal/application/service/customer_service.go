package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/swechhitarimal/SMS/internal/domain/entity"
	"github.com/swechhitarimal/SMS/internal/domain/repository"
	"github.com/swechhitarimal/SMS/pkg/apperror"
)

// CustomerService handles customer records. Purchase totals, counts and the
// last-purchase timestamp are derived from the sales history on every read
// via the best-effort email-or-name join; the stored values are never
// authoritative.
type CustomerService struct {
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	now          func() time.Time
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, saleRepo repository.SaleRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		now:          time.Now,
	}
}

// WithClock overrides the clock used for record timestamps.
func (s *CustomerService) WithClock(now func() time.Time) *CustomerService {
	s.now = now
	return s
}

// ListCustomers lists customers with their derived purchase stats.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	customers, err := s.customerRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range customers {
		applyPurchaseStats(&customers[i], sales)
	}
	return customers, nil
}

// GetCustomer retrieves a customer by ID with derived purchase stats.
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	customers, err := s.customerRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == id {
			sales, err := s.saleRepo.Load(ctx)
			if err != nil {
				return nil, err
			}
			applyPurchaseStats(&customers[i], sales)
			return &customers[i], nil
		}
	}
	return nil, apperror.NewNotFoundError("Customer")
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Notes   string
}

// CreateCustomer creates a new customer. Name and email are required and the
// email must be unique.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.Name == "" || input.Email == "" {
		return nil, apperror.NewBadRequestError("Customer name and email are required")
	}

	customers, err := s.customerRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].Email == input.Email {
			return nil, apperror.NewConflictError("Customer with this email already exists")
		}
	}

	customer := entity.Customer{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		Notes:     input.Notes,
		CreatedAt: s.now(),
	}

	customers = append(customers, customer)
	if err := s.customerRepo.Save(ctx, customers); err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID      string
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Notes   *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customers, err := s.customerRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range customers {
		if customers[i].ID != input.ID {
			continue
		}

		c := &customers[i]
		if input.Email != nil {
			if *input.Email == "" {
				return nil, apperror.NewBadRequestError("Customer email cannot be empty")
			}
			for j := range customers {
				if j != i && customers[j].Email == *input.Email {
					return nil, apperror.NewConflictError("Customer with this email already exists")
				}
			}
			c.Email = *input.Email
		}
		if input.Name != nil {
			if *input.Name == "" {
				return nil, apperror.NewBadRequestError("Customer name cannot be empty")
			}
			c.Name = *input.Name
		}
		if input.Phone != nil {
			c.Phone = *input.Phone
		}
		if input.Address != nil {
			c.Address = *input.Address
		}
		if input.Notes != nil {
			c.Notes = *input.Notes
		}
		c.UpdatedAt = s.now()

		if err := s.customerRepo.Save(ctx, customers); err != nil {
			return nil, err
		}
		return c, nil
	}

	return nil, apperror.NewNotFoundError("Customer")
}

// DeleteCustomer deletes a customer. The sales history is untouched.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	customers, err := s.customerRepo.Load(ctx)
	if err != nil {
		return err
	}

	remaining := make([]entity.Customer, 0, len(customers))
	found := false
	for _, c := range customers {
		if c.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, c)
	}
	if !found {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Save(ctx, remaining)
}

// applyPurchaseStats recomputes the derived fields on a customer from the
// sales history.
func applyPurchaseStats(c *entity.Customer, sales []entity.Sale) {
	c.TotalPurchases = 0
	c.PurchaseCount = 0
	c.LastPurchase = nil

	for i := range sales {
		if !c.MatchesSale(&sales[i]) {
			continue
		}
		c.TotalPurchases += sales[i].Total
		c.PurchaseCount++
		if c.LastPurchase == nil || sales[i].CreatedAt.After(*c.LastPurchase) {
			last := sales[i].CreatedAt
			c.LastPurchase = &last
		}
	}
}
