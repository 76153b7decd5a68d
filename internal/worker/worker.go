package worker

import (
	"context"
	"log"
	"sync"

	"pricenator/internal/broker"
	"pricenator/internal/service"
)

// OrderWorker consumes order events and feeds them to the processor
type OrderWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
}

// NewOrderWorker creates a new order worker
func NewOrderWorker(consumer *broker.Consumer, processor *service.OrderProcessor) *OrderWorker {
	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderCreated(processor.HandleOrderCreated)

	return &OrderWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
	}
}

// Start starts the worker
func (w *OrderWorker) Start(ctx context.Context) error {
	log.Println("Starting order worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *OrderWorker) Stop() error {
	log.Println("Stopping order worker...")
	return w.consumer.Close()
}

// Initializer guards process-wide event handler registration. The platform
// subscription is registered once at startup with no teardown; repeated
// initialize calls are no-ops.
type Initializer struct {
	mu      sync.Mutex
	started bool
	start   func() error
}

// NewInitializer creates an initializer around a start function.
func NewInitializer(start func() error) *Initializer {
	return &Initializer{start: start}
}

// Initialize starts the worker on first call. Returns whether this call did
// the registration; later calls report false with no error.
func (i *Initializer) Initialize() (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.started {
		return false, nil
	}

	if err := i.start(); err != nil {
		return false, err
	}

	i.started = true
	return true, nil
}

// Started reports whether initialization has happened.
func (i *Initializer) Started() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.started
}
