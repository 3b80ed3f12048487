package entity

import "time"

// Customer represents a customer record. TotalPurchases, PurchaseCount and
// LastPurchase are derived by joining against the sales collection on load;
// the stored values are never the source of truth.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`

	// Derived fields, recomputed from sales.
	TotalPurchases float64    `json:"totalPurchases"`
	PurchaseCount  int        `json:"purchaseCount"`
	LastPurchase   *time.Time `json:"lastPurchase,omitempty"`
}

// MatchesSale reports whether a sale belongs to this customer. The join is
// best effort: exact email equality when the sale carries an email, exact name
// equality as a fallback. Empty values never match, so a coerced malformed
// record cannot claim every anonymous sale. Names that collide or differ in
// case/whitespace can over- or under-count; that is a known limitation of the
// data model, which has no customer foreign key on sales.
func (c *Customer) MatchesSale(s *Sale) bool {
	if s.CustomerEmail != "" && s.CustomerEmail == c.Email {
		return true
	}
	return c.Name != "" && s.CustomerName == c.Name
}
