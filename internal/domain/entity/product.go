package entity

import "time"

// DefaultCategory is the category label used when a product has none, or when
// a sale line references a product that no longer exists.
const DefaultCategory = "Uncategorized"

// Product represents a product in the inventory collection.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Cost        float64   `json:"cost"`
	Stock       int       `json:"stock"`
	MinStock    int       `json:"minStock"`
	Supplier    string    `json:"supplier,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// CategoryOrDefault returns the product category, falling back to
// DefaultCategory when none is set.
func (p *Product) CategoryOrDefault() string {
	if p.Category == "" {
		return DefaultCategory
	}
	return p.Category
}

// IsLowStock reports whether the stock level has reached the minimum threshold.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}
