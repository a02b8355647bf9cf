package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeWagerResolved        EventType = "wager_resolved"
	EventTypeTransfer             EventType = "transfer"
	EventTypeCreditReconciliation EventType = "credit_reconciliation"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// WagerResolvedEvent represents a wager that ran to completion
type WagerResolvedEvent struct {
	AccountID int64
	Game      string
	Outcome   string
	Stake     int64
	Winnings  int64
}

func (e WagerResolvedEvent) Type() EventType {
	return EventTypeWagerResolved
}

// TransferEvent represents tokens moved into an account. From is zero for
// privileged mints.
type TransferEvent struct {
	From   int64
	To     int64
	Amount int64
}

func (e TransferEvent) Type() EventType {
	return EventTypeTransfer
}

// CreditReconciliationEvent is published when a credit could not be applied
// after the matching debit already succeeded. Operators must apply the credit
// manually.
type CreditReconciliationEvent struct {
	AccountID int64
	Amount    int64
	Op        string
	Cause     string
}

func (e CreditReconciliationEvent) Type() EventType {
	return EventTypeCreditReconciliation
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the wager pipeline
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}
