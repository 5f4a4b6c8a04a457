package domain

import (
	"errors"
	"fmt"

	"github.com/davidbz/chargeflow/internal/charge"
)

var (
	// ErrChargeNotFound is returned when a charge ID is not stored.
	ErrChargeNotFound = errors.New("charge not found")

	// ErrEmptyBatch is returned for an invoice preview without lines.
	ErrEmptyBatch = errors.New("batch has no lines")

	// ErrBatchTooLarge is returned when a batch exceeds the configured size.
	ErrBatchTooLarge = errors.New("batch exceeds maximum size")

	// ErrEmptyChargeID is returned when an operation needs an ID and got none.
	ErrEmptyChargeID = errors.New("charge id cannot be empty")
)

// InvalidConfigError carries the findings that prevented a configuration from
// being stored or computed.
type InvalidConfigError struct {
	Model  charge.Model
	Errors charge.ValidationErrors
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid %s configuration: %s", e.Model, e.Errors.Error())
}

// Unwrap lets callers match charge.ErrInvalidConfig.
func (e *InvalidConfigError) Unwrap() error {
	return charge.ErrInvalidConfig
}

// LineError attributes a batch failure to the line that caused it.
type LineError struct {
	Index int
	Err   error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Index, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
