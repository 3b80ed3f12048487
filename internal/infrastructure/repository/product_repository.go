package repository

import (
	"context"
	"encoding/json"

	"github.com/swechhitarimal/SMS/internal/domain/entity"
	domainRepo "github.com/swechhitarimal/SMS/internal/domain/repository"
	"github.com/swechhitarimal/SMS/internal/infrastructure/storage"
	"github.com/swechhitarimal/SMS/pkg/apperror"
)

type productRepository struct {
	store storage.Store
}

// NewProductRepository creates a store-backed product repository.
func NewProductRepository(store storage.Store) domainRepo.ProductRepository {
	return &productRepository{store: store}
}

func (r *productRepository) Load(ctx context.Context) ([]entity.Product, error) {
	data, err := r.store.Get(ctx, storage.KeyProducts)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []entity.Product{}, nil
	}

	var products []entity.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, apperror.NewCorruptCollectionError(storage.KeyProducts)
	}
	return products, nil
}

func (r *productRepository) Save(ctx context.Context, products []entity.Product) error {
	if products == nil {
		products = []entity.Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, storage.KeyProducts, data)
}
