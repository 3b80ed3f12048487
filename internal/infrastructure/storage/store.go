package storage

import "context"

// Store is a synchronous string-keyed blob store. Values are opaque byte
// slices; the repositories above it read and write whole JSON-encoded
// collections under fixed keys.
type Store interface {
	// Get returns the value for key, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}

// Fixed collection keys.
const (
	KeyProducts  = "shop_products"
	KeySales     = "shop_sales"
	KeyCustomers = "shop_customers"
)
