package redisclient

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client is the notification bus backed by Redis pub/sub. Each product has
// its own channel; delivery is at-most-once to whoever is subscribed when
// the event is published.
type Client struct {
	rdb           *redis.Client
	channelPrefix string
}

// NewClient creates a new Redis notification bus client
func NewClient(addr, password string, db int, channelPrefix string) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{
		rdb:           rdb,
		channelPrefix: channelPrefix,
	}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// ChannelOf maps a product ID to its notification channel name.
func (c *Client) ChannelOf(productID string) string {
	return c.channelPrefix + productID
}

// Publish publishes a payload to a channel. There is no delivery
// confirmation; subscribers attached at publish time receive it, nobody
// else ever will.
func (c *Client) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := c.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s failed: %w", channel, err)
	}
	return nil
}

// Subscription is an active channel subscription.
type Subscription struct {
	pubsub *redis.PubSub
}

// Close tears down the subscription.
func (s *Subscription) Close() error {
	return s.pubsub.Close()
}

// Subscribe registers a handler invoked once per message published to the
// channel while the subscription is active. No backlog is delivered.
func (c *Client) Subscribe(ctx context.Context, channel string, handler func(payload []byte)) (*Subscription, error) {
	pubsub := c.rdb.Subscribe(ctx, channel)

	// Receive forces the SUBSCRIBE round-trip so callers know the
	// subscription is live before this returns.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe to %s failed: %w", channel, err)
	}

	go func() {
		for msg := range pubsub.Channel() {
			handler([]byte(msg.Payload))
		}
		log.Printf("Subscription closed: channel=%s", channel)
	}()

	return &Subscription{pubsub: pubsub}, nil
}
