package entity

import (
	"time"

	"github.com/swechhitarimal/SMS/internal/domain/enum"
)

// SaleStatusCompleted is the only status the system records today; sales are
// written once and never amended.
const SaleStatusCompleted = "completed"

// SaleItem is one product line within a sale. Name and Price are captured at
// sale time so the line stays meaningful if the product is later renamed or
// deleted.
type SaleItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

// Sale represents a completed sale. The sales collection is append-only
// history, newest first.
type Sale struct {
	ID            string             `json:"id"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail,omitempty"`
	Items         []SaleItem         `json:"items"`
	Total         float64            `json:"total"`
	PaymentMethod enum.PaymentMethod `json:"paymentMethod"`
	Notes         string             `json:"notes,omitempty"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"date"`
}
