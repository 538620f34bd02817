// Package events publishes transaction change notifications.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Event names, also used as routing keys
const (
	TransactionCreated = "transaction.created"
	TransactionUpdated = "transaction.updated"
	TransactionDeleted = "transaction.deleted"
)

// Event a committed change to one transaction
type Event struct {
	Name          string    `json:"event"`
	TransactionID uint      `json:"transactionId"`
	LedgerID      uint      `json:"ledgerId"`
	UserID        uint      `json:"userId"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewEvent stamps an event with the current UTC time.
func NewEvent(name string, transactionID, ledgerID, userID uint) Event {
	return Event{
		Name:          name,
		TransactionID: transactionID,
		LedgerID:      ledgerID,
		UserID:        userID,
		OccurredAt:    time.Now().UTC(),
	}
}

// ToJSON encodes the event body.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

// Publish discards e.
func (NoopPublisher) Publish(context.Context, Event) error { return nil }

// Close is a no-op.
func (NoopPublisher) Close() error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	Err    error
}

// Publish stores e, or returns Err when set.
func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, e)
	return nil
}

// Close is a no-op.
func (r *Recorder) Close() error { return nil }

// Events returns a copy of what was published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
