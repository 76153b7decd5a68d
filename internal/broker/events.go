package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"pricenator/internal/models"

	"github.com/segmentio/kafka-go"
)

// ErrInvalidOrderPayload marks an order event that cannot be decoded into
// a usable Order. Invalid payloads are logged and skipped, never retried.
var ErrInvalidOrderPayload = errors.New("invalid order payload")

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderCreated publishes OrderCreated event
func (ep *EventPublisher) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	key := fmt.Sprintf("order-%s", event.Order.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// DecodeOrderCreated decodes and validates an OrderCreated event payload.
// Any decode or validation failure wraps ErrInvalidOrderPayload.
func DecodeOrderCreated(data []byte) (*models.OrderCreatedEvent, error) {
	var event models.OrderCreatedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOrderPayload, err)
	}

	if event.EventType != models.EventTypeOrderCreated {
		return nil, fmt.Errorf("%w: unexpected event type %q", ErrInvalidOrderPayload, event.EventType)
	}

	if event.Order.OrderID == "" {
		return nil, fmt.Errorf("%w: missing order id", ErrInvalidOrderPayload)
	}

	return &event, nil
}

// EventHandler routes incoming events to registered handlers
type EventHandler struct {
	onOrderCreated func(context.Context, *models.OrderCreatedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnOrderCreated registers a handler for OrderCreated events
func (eh *EventHandler) OnOrderCreated(handler func(context.Context, *models.OrderCreatedEvent) error) {
	eh.onOrderCreated = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		log.Printf("Skipping undecodable event: %v", err)
		return nil
	}

	log.Printf("Handling event: type=%s, id=%s", baseEvent.EventType, baseEvent.EventID)

	switch baseEvent.EventType {
	case models.EventTypeOrderCreated:
		if eh.onOrderCreated != nil {
			event, err := DecodeOrderCreated(msg.Value)
			if err != nil {
				// Invalid payloads are terminal: log and commit.
				log.Printf("Skipping order event %s: %v", baseEvent.EventID, err)
				return nil
			}
			return eh.onOrderCreated(ctx, event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
