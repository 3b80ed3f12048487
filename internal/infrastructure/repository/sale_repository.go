package repository

import (
	"context"
	"encoding/json"

	"github.com/swechhitarimal/SMS/internal/domain/entity"
	domainRepo "github.com/swechhitarimal/SMS/internal/domain/repository"
	"github.com/swechhitarimal/SMS/internal/infrastructure/storage"
	"github.com/swechhitarimal/SMS/pkg/apperror"
)

type saleRepository struct {
	store storage.Store
}

// NewSaleRepository creates a store-backed sale repository.
func NewSaleRepository(store storage.Store) domainRepo.SaleRepository {
	return &saleRepository{store: store}
}

func (r *saleRepository) Load(ctx context.Context) ([]entity.Sale, error) {
	data, err := r.store.Get(ctx, storage.KeySales)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []entity.Sale{}, nil
	}

	var sales []entity.Sale
	if err := json.Unmarshal(data, &sales); err != nil {
		return nil, apperror.NewCorruptCollectionError(storage.KeySales)
	}

	// Missing fields decode to zero values; guarantee items is never nil so
	// the aggregation core can assume well-formed records.
	for i := range sales {
		if sales[i].Items == nil {
			sales[i].Items = []entity.SaleItem{}
		}
	}
	return sales, nil
}

func (r *saleRepository) Save(ctx context.Context, sales []entity.Sale) error {
	if sales == nil {
		sales = []entity.Sale{}
	}
	data, err := json.Marshal(sales)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, storage.KeySales, data)
}
