package repository

import (
	"context"

	"github.com/swechhitarimal/SMS/internal/domain/entity"
)

// CustomerRepository persists the customer collection as a whole. Derived
// purchase stats on the loaded records reflect whatever was last saved; the
// customer service recomputes them from sales.
type CustomerRepository interface {
	Load(ctx context.Context) ([]entity.Customer, error)
	Save(ctx context.Context, customers []entity.Customer) error
}
