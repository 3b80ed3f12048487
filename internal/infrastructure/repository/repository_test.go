package repository

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swechhitarimal/SMS/internal/domain/entity"
	"github.com/swechhitarimal/SMS/internal/infrastructure/storage"
	"github.com/swechhitarimal/SMS/pkg/apperror"
)

func TestLoadEmptyCollections(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	products, err := NewProductRepository(store).Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)

	sales, err := NewSaleRepository(store).Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, sales)
	assert.Empty(t, sales)

	customers, err := NewCustomerRepository(store).Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)
}

func TestProductRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewProductRepository(store)
	ctx := context.Background()

	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	in := []entity.Product{{
		ID:        "p1",
		Name:      "Widget",
		Category:  "Tools",
		Price:     5.5,
		Cost:      2.25,
		Stock:     10,
		MinStock:  3,
		Supplier:  "Acme",
		CreatedAt: created,
	}}
	require.NoError(t, repo.Save(ctx, in))

	out, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSaleRoundTripNormalizesNilItems(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewSaleRepository(store)
	ctx := context.Background()

	// A stored record can legitimately lack the items array.
	require.NoError(t, store.Set(ctx, storage.KeySales, []byte(`[{"id":"s1","total":10}]`)))

	out, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.NotNil(t, out[0].Items)
	assert.Empty(t, out[0].Items)
}

func TestCorruptCollectionIsTypedError(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	// Valid JSON, but not an array of records.
	require.NoError(t, store.Set(ctx, storage.KeyProducts, []byte(`{"oops":true}`)))

	_, err := NewProductRepository(store).Load(ctx)
	require.Error(t, err)
	require.True(t, apperror.IsAppError(err))
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewCustomerRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, nil))

	raw, err := store.Get(ctx, storage.KeyCustomers)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestSaleDateFieldName(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewSaleRepository(store)
	ctx := context.Background()

	when := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, []entity.Sale{{ID: "s1", Total: 10, CreatedAt: when}}))

	raw, err := store.Get(ctx, storage.KeySales)
	require.NoError(t, err)
	// The timestamp is stored under "date", matching the dashboard records.
	assert.Contains(t, string(raw), `"date":"2024-05-15T10:00:00Z"`)
}
