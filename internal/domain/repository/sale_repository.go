package repository

import (
	"context"

	"github.com/swechhitarimal/SMS/internal/domain/entity"
)

// SaleRepository persists the sales collection as a whole. The collection is
// append-only history; callers prepend new sales and save the full slice.
type SaleRepository interface {
	Load(ctx context.Context) ([]entity.Sale, error)
	Save(ctx context.Context, sales []entity.Sale) error
}
