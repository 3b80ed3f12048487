package repository

import (
	"context"

	"github.com/swechhitarimal/SMS/internal/domain/entity"
)

// ProductRepository persists the inventory collection as a whole. Load returns
// an empty slice when nothing has been stored yet.
type ProductRepository interface {
	Load(ctx context.Context) ([]entity.Product, error)
	Save(ctx context.Context, products []entity.Product) error
}
