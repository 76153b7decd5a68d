package service

import (
	"context"
	"encoding/json"
	"time"

	"pricenator/internal/models"
	"pricenator/internal/util"

	"go.uber.org/zap"
)

// NotificationBus is the publish side of the notification channel contract.
type NotificationBus interface {
	ChannelOf(productID string) string
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Notifier fans out price change events to storefront subscribers.
// Notification is advisory: a publish failure never fails the order.
type Notifier struct {
	bus    NotificationBus
	logger *zap.Logger
}

// NewNotifier creates a new notifier
func NewNotifier(bus NotificationBus) *Notifier {
	return &Notifier{
		bus:    bus,
		logger: util.GetLogger(),
	}
}

// Dispatch publishes one PriceChangeEvent per updated result. Results with
// any other outcome produce no event. Failures are logged and recorded in
// the returned outcomes, never propagated.
func (n *Notifier) Dispatch(ctx context.Context, results []models.PriceUpdateResult) []models.DispatchOutcome {
	ctx, span := util.StartSpan(ctx, "Notifier.Dispatch")
	defer span.End()

	outcomes := make([]models.DispatchOutcome, 0, len(results))
	for _, result := range results {
		if !result.Updated() {
			continue
		}

		channel := n.bus.ChannelOf(result.ProductID)
		outcome := models.DispatchOutcome{
			ProductID: result.ProductID,
			Channel:   channel,
		}

		event := models.NewPriceChangeEvent(result.ProductID, time.Now())
		payload, err := json.Marshal(event)
		if err == nil {
			err = n.bus.Publish(ctx, channel, payload)
		}

		if err != nil {
			n.logger.Warn("Failed to publish price change notification",
				zap.String("product_id", result.ProductID),
				zap.String("channel", channel),
				zap.Error(err))
			util.NotificationsFailedTotal.Inc()
			outcome.Error = err.Error()
		} else {
			n.logger.Info("Price change notification published",
				zap.String("product_id", result.ProductID),
				zap.String("channel", channel))
			util.NotificationsPublishedTotal.Inc()
			outcome.Published = true
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes
}
