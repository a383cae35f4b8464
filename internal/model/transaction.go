// Package model defines the core domain types shared across the application.
package model

import (
	"fmt"
	"strings"
)

// Transaction represents a single validated sales record from the feed.
type Transaction struct {
	ID          string
	Date        string // opaque YYYY-MM-DD token, lexicographically sortable
	ProductID   string
	ProductName string
	CustomerID  string
	Region      string
	Quantity    int
	UnitPrice   float64
}

// Amount returns the transaction value. It is derived, never stored.
func (t *Transaction) Amount() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// Validate checks the structural invariants every transaction must satisfy
// before it enters the analytics engine.
func (t *Transaction) Validate() error {
	if t.ID == "" || t.Date == "" || t.ProductID == "" || t.ProductName == "" ||
		t.CustomerID == "" || t.Region == "" {
		return fmt.Errorf("missing required field")
	}
	if !strings.HasPrefix(t.ID, "T") {
		return fmt.Errorf("transaction ID %q must start with 'T'", t.ID)
	}
	if !strings.HasPrefix(t.ProductID, "P") {
		return fmt.Errorf("product ID %q must start with 'P'", t.ProductID)
	}
	if !strings.HasPrefix(t.CustomerID, "C") {
		return fmt.Errorf("customer ID %q must start with 'C'", t.CustomerID)
	}
	if t.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", t.Quantity)
	}
	if t.UnitPrice <= 0 {
		return fmt.Errorf("unit price must be positive, got %.2f", t.UnitPrice)
	}
	return nil
}

// ProductMeta holds catalog metadata for a single product.
type ProductMeta struct {
	Title    string
	Category string
	Brand    string
	Rating   float64
}

// EnrichedTransaction is a transaction joined with catalog metadata.
// The API fields are nil when no catalog entry matched.
type EnrichedTransaction struct {
	Transaction
	APICategory *string
	APIBrand    *string
	APIRating   *float64
	APIMatch    bool
}
