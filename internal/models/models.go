package models

import (
	"fmt"
	"time"
)

// Order represents a confirmed purchase received from the commerce platform.
// Orders are created externally and are immutable once received.
type Order struct {
	OrderID   string     `json:"order_id"`
	LineItems []LineItem `json:"line_items"`
}

// LineItem is a single purchased entry within an order. A line item
// without a catalog reference is inert and skipped during processing.
type LineItem struct {
	CatalogReference *CatalogReference `json:"catalog_reference,omitempty"`
	Quantity         int               `json:"quantity"`
}

// CatalogReference points at a product in the external catalog.
type CatalogReference struct {
	ProductID string `json:"product_id"`
}

// Product is the slice of catalog state this service reads and rewrites.
// The catalog service owns the record; only the price field is ever written.
type Product struct {
	ID             string  `json:"id"`
	Price          float64 `json:"price"`
	FormattedPrice string  `json:"formatted_price,omitempty"`
}

// FormatPrice renders a price the way the catalog displays it.
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// Price update outcomes
const (
	OutcomeUpdated         = "UPDATED"
	OutcomeProductNotFound = "PRODUCT_NOT_FOUND"
	OutcomeUpdateFailed    = "UPDATE_FAILED"
)

// PriceUpdateResult is the per-product outcome of processing one line item.
type PriceUpdateResult struct {
	ProductID     string  `json:"product_id"`
	PreviousPrice float64 `json:"previous_price"`
	NewPrice      float64 `json:"new_price"`
	Outcome       string  `json:"outcome"`
	Error         string  `json:"error,omitempty"`
}

// Updated reports whether the price write went through.
func (r PriceUpdateResult) Updated() bool {
	return r.Outcome == OutcomeUpdated
}

// DispatchOutcome records whether a price change notification was published.
type DispatchOutcome struct {
	ProductID string `json:"product_id"`
	Channel   string `json:"channel"`
	Published bool   `json:"published"`
	Error     string `json:"error,omitempty"`
}

// ProcessedEvent for idempotency
type ProcessedEvent struct {
	EventID     string    `db:"event_id"`
	EventType   string    `db:"event_type"`
	ProcessedAt time.Time `db:"processed_at"`
}
