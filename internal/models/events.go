package models

import "time"

// Event types
const (
	EventTypeOrderCreated = "ORDER_CREATED"
	EventTypePriceChange  = "PRICE_CHANGE"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent is delivered by the commerce platform when an order
// is placed. It carries the full order payload.
type OrderCreatedEvent struct {
	BaseEvent
	Order Order `json:"order"`
}

// PriceChangeEvent is published to a product's notification channel after
// a successful price update. Delivery is best-effort; subscribers that are
// not listening at publish time never see it.
type PriceChangeEvent struct {
	Type      string `json:"type"`
	ProductID string `json:"productId"`
	Timestamp string `json:"timestamp"`
}

// NewPriceChangeEvent builds a PriceChangeEvent for a product.
func NewPriceChangeEvent(productID string, at time.Time) PriceChangeEvent {
	return PriceChangeEvent{
		Type:      EventTypePriceChange,
		ProductID: productID,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
}
