package repository

import (
	"context"
	"encoding/json"

	"github.com/swechhitarimal/SMS/internal/domain/entity"
	domainRepo "github.com/swechhitarimal/SMS/internal/domain/repository"
	"github.com/swechhitarimal/SMS/internal/infrastructure/storage"
	"github.com/swechhitarimal/SMS/pkg/apperror"
)

type customerRepository struct {
	store storage.Store
}

// NewCustomerRepository creates a store-backed customer repository.
func NewCustomerRepository(store storage.Store) domainRepo.CustomerRepository {
	return &customerRepository{store: store}
}

func (r *customerRepository) Load(ctx context.Context) ([]entity.Customer, error) {
	data, err := r.store.Get(ctx, storage.KeyCustomers)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []entity.Customer{}, nil
	}

	var customers []entity.Customer
	if err := json.Unmarshal(data, &customers); err != nil {
		return nil, apperror.NewCorruptCollectionError(storage.KeyCustomers)
	}
	return customers, nil
}

func (r *customerRepository) Save(ctx context.Context, customers []entity.Customer) error {
	if customers == nil {
		customers = []entity.Customer{}
	}
	data, err := json.Marshal(customers)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, storage.KeyCustomers, data)
}
