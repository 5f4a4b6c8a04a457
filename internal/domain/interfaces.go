package domain

import (
	"context"
	"time"
)

// ChargeStore persists validated charge configurations.
type ChargeStore interface {
	// Save inserts or replaces a charge.
	Save(ctx context.Context, charge *Charge) error

	// Get retrieves a charge by ID. Returns ErrChargeNotFound when absent.
	Get(ctx context.Context, id string) (*Charge, error)

	// Delete removes a charge. Returns ErrChargeNotFound when absent.
	Delete(ctx context.Context, id string) error

	// List returns all charges ordered by creation time.
	List(ctx context.Context) ([]*Charge, error)
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}

// MetricsRecorder records validation and computation outcomes.
type MetricsRecorder interface {
	RecordValidation(model string, valid bool)
	RecordComputation(model string, err error, elapsed time.Duration)
}
