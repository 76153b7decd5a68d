package service

import (
	"context"
	"fmt"

	"pricenator/internal/models"
	"pricenator/internal/util"

	"go.uber.org/zap"
)

// EventLedger records which order events have already been handled, so a
// redelivered event does not bump prices twice.
type EventLedger interface {
	IsEventProcessed(ctx context.Context, eventID string) (bool, error)
	MarkEventProcessed(ctx context.Context, eventID, eventType string) error
}

// OrderProcessor ties the pipeline together: dedup, price updates, then
// notification fan-out. It is the sole entry point for OrderCreated events.
type OrderProcessor struct {
	ledger   EventLedger
	prices   *PriceService
	notifier *Notifier
	logger   *zap.Logger
}

// NewOrderProcessor creates a new order processor
func NewOrderProcessor(ledger EventLedger, prices *PriceService, notifier *Notifier) *OrderProcessor {
	return &OrderProcessor{
		ledger:   ledger,
		prices:   prices,
		notifier: notifier,
		logger:   util.GetLogger(),
	}
}

// HandleOrderCreated processes one OrderCreated event end to end.
func (op *OrderProcessor) HandleOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	ctx, span := util.StartSpan(ctx, "OrderProcessor.HandleOrderCreated")
	defer span.End()

	processed, err := op.ledger.IsEventProcessed(ctx, event.EventID)
	if err != nil {
		return fmt.Errorf("failed to check event processed: %w", err)
	}
	if processed {
		op.logger.Info("Event already processed",
			zap.String("event_id", event.EventID),
			zap.String("order_id", event.Order.OrderID))
		util.OrdersSkippedTotal.WithLabelValues("duplicate").Inc()
		return nil
	}

	op.logger.Info("Order event received",
		zap.String("event_id", event.EventID),
		zap.String("order_id", event.Order.OrderID),
		zap.Int("line_items", len(event.Order.LineItems)))

	results, err := op.prices.ProcessOrder(ctx, &event.Order)
	if err != nil {
		return fmt.Errorf("failed to process order %s: %w", event.Order.OrderID, err)
	}

	op.notifier.Dispatch(ctx, results)

	util.OrdersProcessedTotal.Inc()

	if err := op.ledger.MarkEventProcessed(ctx, event.EventID, event.EventType); err != nil {
		op.logger.Error("Failed to mark event processed", zap.Error(err))
	}

	var updated, notFound, failed int
	for _, result := range results {
		switch result.Outcome {
		case models.OutcomeUpdated:
			updated++
		case models.OutcomeProductNotFound:
			notFound++
		case models.OutcomeUpdateFailed:
			failed++
		}
	}

	op.logger.Info("Order processing complete",
		zap.String("order_id", event.Order.OrderID),
		zap.Int("updated", updated),
		zap.Int("not_found", notFound),
		zap.Int("failed", failed))

	return nil
}
