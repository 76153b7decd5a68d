// Command price-watch subscribes to one product's notification channel and
// prints a banner for every price change event, standing in for the
// storefront widget.
//
// Usage:
//
//	price-watch -product <productId> [-message <text>] [-show-badge=false]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pricenator/config"
	"pricenator/internal/models"
	"pricenator/internal/redisclient"
)

const defaultMessage = "The price of this product has just increased. Refresh to see the new price."

func main() {
	productID := flag.String("product", "", "catalog product ID to watch (required)")
	message := flag.String("message", defaultMessage, "notification message to display")
	showBadge := flag.Bool("show-badge", true, "print the badge line above the message")
	flag.Parse()

	if *productID == "" {
		log.Fatal("Usage: price-watch -product <productId> [-message <text>] [-show-badge=false]")
	}

	cfg := config.Load()

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Business.ChannelPrefix)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	channel := redisClient.ChannelOf(*productID)

	sub, err := redisClient.Subscribe(context.Background(), channel, func(payload []byte) {
		var event models.PriceChangeEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			log.Printf("Skipping undecodable notification: %v", err)
			return
		}
		if event.Type != models.EventTypePriceChange {
			return
		}

		if *showBadge {
			log.Printf("[Price Updated] product=%s", event.ProductID)
		}
		log.Printf("%s (at %s)", *message, event.Timestamp)
	})
	if err != nil {
		log.Fatalf("Failed to subscribe to %s: %v", channel, err)
	}
	defer sub.Close()

	log.Printf("Watching channel %s for price changes...", channel)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stopped watching")
}
