// Command test-order publishes a synthetic OrderCreated event to the
// order-events topic, which triggers the price update flow end to end.
//
// Usage:
//
//	test-order -product <productId> [-qty 1] [-order <orderId>]
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"pricenator/config"
	"pricenator/internal/broker"
	"pricenator/internal/models"

	"github.com/google/uuid"
)

func main() {
	productID := flag.String("product", "", "catalog product ID to order (required)")
	quantity := flag.Int("qty", 1, "line item quantity")
	orderID := flag.String("order", "", "order ID (random when empty)")
	flag.Parse()

	if *productID == "" {
		log.Fatal("Usage: test-order -product <productId> [-qty 1] [-order <orderId>]")
	}

	if *orderID == "" {
		*orderID = "test-" + uuid.New().String()[:8]
	}

	cfg := config.Load()

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder)
	defer producer.Close()

	publisher := broker.NewEventPublisher(producer)

	event := &models.OrderCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderCreated,
			Timestamp: time.Now(),
		},
		Order: models.Order{
			OrderID: *orderID,
			LineItems: []models.LineItem{
				{
					CatalogReference: &models.CatalogReference{ProductID: *productID},
					Quantity:         *quantity,
				},
			},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := publisher.PublishOrderCreated(ctx, event); err != nil {
		log.Fatalf("Failed to publish test order: %v", err)
	}

	log.Printf("Test order published: order_id=%s, product_id=%s, qty=%d",
		*orderID, *productID, *quantity)
	log.Printf("Check product %s for the new price and watch its notification channel", *productID)
}
