package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"pricenator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishedMessage struct {
	channel string
	payload []byte
}

type fakeBus struct {
	published    []publishedMessage
	failChannels map[string]error
}

func newFakeBus() *fakeBus {
	return &fakeBus{failChannels: make(map[string]error)}
}

func (fb *fakeBus) ChannelOf(productID string) string {
	return "price-update-" + productID
}

func (fb *fakeBus) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := fb.failChannels[channel]; err != nil {
		return err
	}
	fb.published = append(fb.published, publishedMessage{channel: channel, payload: payload})
	return nil
}

func TestDispatchPublishesOnlyUpdatedResults(t *testing.T) {
	bus := newFakeBus()
	notifier := NewNotifier(bus)

	results := []models.PriceUpdateResult{
		{ProductID: "A", PreviousPrice: 10, NewPrice: 11, Outcome: models.OutcomeUpdated},
		{ProductID: "B", Outcome: models.OutcomeProductNotFound},
		{ProductID: "C", Outcome: models.OutcomeUpdateFailed, Error: "boom"},
		{ProductID: "D", PreviousPrice: 5, NewPrice: 6, Outcome: models.OutcomeUpdated},
	}

	outcomes := notifier.Dispatch(context.Background(), results)

	require.Len(t, outcomes, 2)
	require.Len(t, bus.published, 2)

	assert.Equal(t, "price-update-A", bus.published[0].channel)
	assert.Equal(t, "price-update-D", bus.published[1].channel)
	assert.True(t, outcomes[0].Published)
	assert.True(t, outcomes[1].Published)
}

func TestDispatchEventShape(t *testing.T) {
	bus := newFakeBus()
	notifier := NewNotifier(bus)

	results := []models.PriceUpdateResult{
		{ProductID: "A", PreviousPrice: 10, NewPrice: 11, Outcome: models.OutcomeUpdated},
	}

	notifier.Dispatch(context.Background(), results)

	require.Len(t, bus.published, 1)

	var event models.PriceChangeEvent
	require.NoError(t, json.Unmarshal(bus.published[0].payload, &event))

	assert.Equal(t, models.EventTypePriceChange, event.Type)
	assert.Equal(t, "A", event.ProductID)

	_, err := time.Parse(time.RFC3339, event.Timestamp)
	assert.NoError(t, err)
}

func TestDispatchPublishFailureIsAdvisory(t *testing.T) {
	bus := newFakeBus()
	bus.failChannels["price-update-A"] = assert.AnError
	notifier := NewNotifier(bus)

	results := []models.PriceUpdateResult{
		{ProductID: "A", PreviousPrice: 10, NewPrice: 11, Outcome: models.OutcomeUpdated},
		{ProductID: "B", PreviousPrice: 5, NewPrice: 6, Outcome: models.OutcomeUpdated},
	}

	outcomes := notifier.Dispatch(context.Background(), results)

	require.Len(t, outcomes, 2)
	assert.False(t, outcomes[0].Published)
	assert.NotEmpty(t, outcomes[0].Error)
	assert.True(t, outcomes[1].Published)

	// Only B made it onto the bus.
	require.Len(t, bus.published, 1)
	assert.Equal(t, "price-update-B", bus.published[0].channel)
}

func TestDispatchNoResults(t *testing.T) {
	bus := newFakeBus()
	notifier := NewNotifier(bus)

	outcomes := notifier.Dispatch(context.Background(), nil)

	assert.Empty(t, outcomes)
	assert.Empty(t, bus.published)
}
